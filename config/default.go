package config

func GetDefault() Config {
	return Config{
		Verbose:  true,
		Dir:      DefaultDir,
		Policies: []string{"conventional-lax", "lax"},
		Formatter: FormatterConfig{
			Command: "prettier",
		},
	}
}
