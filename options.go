package md2page

// Option configures a Converter.
type Option func(*Converter)

// WithDateFormat sets how frontmatter dates are displayed: a preset name
// (short, iso, european, us, long) or a token format such as "DD/MM/YYYY".
// The default is "short", i.e. M/D/YYYY. Dates are shown in UTC.
func WithDateFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.dateFormat = format
	}
}

// WithHighlighting enables or disables chroma token spans in code blocks.
// Language classes are normalized either way. Enabled by default.
func WithHighlighting(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.highlight = enabled
	}
}

// WithLanguageDetection enables or disables language detection.
// Enabled by default.
func WithLanguageDetection(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.detectLanguage = enabled
	}
}

// WithLanguageClassifier replaces the trigram language classifier.
func WithLanguageClassifier(classifier Classifier) Option {
	return func(c *Converter) {
		c.cfg.classifier = classifier
	}
}

// WithLanguageCodeTable replaces the ISO 639-3 to 639-1 table.
func WithLanguageCodeTable(table CodeTable) Option {
	return func(c *Converter) {
		c.cfg.codeTable = table
	}
}
