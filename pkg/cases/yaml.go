package cases

// yamlCase is the intermediate struct for parsing a case file. Paths
// are relative to the case file's directory.
type yamlCase struct {
	Snapshot   string          `yaml:"snapshot"`
	Actual     string          `yaml:"actual"`
	Mode       string          `yaml:"mode,omitempty"`   // ordered (default) or unordered
	Format     string          `yaml:"format,omitempty"` // text or json; default by snapshot extension
	Redactions []yamlRedaction `yaml:"redactions,omitempty"`
}

// yamlRedaction binds one placeholder to exactly one matcher form.
type yamlRedaction struct {
	Placeholder string `yaml:"placeholder"`
	Literal     string `yaml:"literal,omitempty"`
	Path        string `yaml:"path,omitempty"`
	Regex       string `yaml:"regex,omitempty"`
}
