package stream

// Config carries the host configuration read from the YAML config file.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Player struct {
		File           string  `yaml:"file"`
		Loops          int     `yaml:"loops"`
		FrameRate      float64 `yaml:"frameRate"`
		TransitionSecs float64 `yaml:"transitionSecs"`
	} `yaml:"player"`
	Api struct {
		Addr string `yaml:"addr"`
	} `yaml:"api"`
}
