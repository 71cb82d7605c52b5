package stream

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the application configuration, read from YAML.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
			Status  string `yaml:"status"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Strip struct {
		Pixels    int     `yaml:"pixels"`
		FrameRate float64 `yaml:"frameRate"`
	} `yaml:"strip"`
	Animator struct {
		FPS       int   `yaml:"fps"`
		FrameSkip *bool `yaml:"frameSkip"`
	} `yaml:"animator"`
	API struct {
		// Listen is the HTTP address; "-" disables the API.
		Listen string `yaml:"listen"`
		Static string `yaml:"static"`
	} `yaml:"api"`
	Animations []AnimationConfig `yaml:"animations"`
}

// AnimationConfig describes one named animation and the layer it drives.
type AnimationConfig struct {
	Name        string      `yaml:"name"`
	Keyframes   string      `yaml:"keyframes"`
	Duration    float64     `yaml:"duration"`
	Delay       float64     `yaml:"delay"`
	Easing      string      `yaml:"easing"`
	Spring      *Spring     `yaml:"spring"`
	Loop        bool        `yaml:"loop"`
	Freeze      bool        `yaml:"freeze"`
	BackToStart bool        `yaml:"backToStart"`
	Reverse     bool        `yaml:"reverse"`
	Autoplay    bool        `yaml:"autoplay"`
	Next        string      `yaml:"next"`
	Layer       LayerConfig `yaml:"layer"`
}

// Spring replaces the named easing with a damped spring curve.
type Spring struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// LayerConfig selects how an animation's value is drawn onto the strip.
type LayerConfig struct {
	Kind     string        `yaml:"kind"`
	Colour   string        `yaml:"colour"`
	Width    int           `yaml:"width"`
	Gradient GradientTable `yaml:"gradient"`
}

// DurationTime returns the configured duration in seconds as a time.Duration.
func (a AnimationConfig) DurationTime() time.Duration {
	return seconds(a.Duration)
}

// DelayTime returns the configured delay in seconds as a time.Duration.
func (a AnimationConfig) DelayTime() time.Duration {
	return seconds(a.Delay)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// ReadConfig decodes a YAML configuration and fills in defaults.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil && err != io.EOF {
		return c, err
	}

	c.setDefaults()
	if c.Strip.Pixels > MaxPixels {
		return c, fmt.Errorf("%w: strip of %d pixels is longer than %d", ErrConfig, c.Strip.Pixels, MaxPixels)
	}
	return c, nil
}

func (c *Config) setDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "ledtween"
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "home/xmastree/stream"
	}
	if c.Strip.Pixels <= 0 {
		c.Strip.Pixels = 500
	}
	if c.Strip.FrameRate <= 0 {
		c.Strip.FrameRate = 30
	}
	if c.API.Listen == "" {
		c.API.Listen = ":3000"
	}
	if c.Animator.FPS <= 0 {
		c.Animator.FPS = 60
	}
	if c.Animator.FrameSkip == nil {
		enabled := true
		c.Animator.FrameSkip = &enabled
	}
}
