// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	House      HouseConfig      `yaml:"house"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Audio      AudioConfig      `yaml:"audio"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// HouseConfig holds the model to walk through.
type HouseConfig struct {
	LayoutPath string `yaml:"layout_path"` // Path to the house layout YAML
}

// LocomotionConfig holds teleport tuning values.
type LocomotionConfig struct {
	GravityY         float32 `yaml:"gravity_y"`
	TimeStep         float32 `yaml:"time_step"`
	MaxSteps         int     `yaml:"max_steps"`
	SurfaceThreshold float32 `yaml:"surface_threshold"`
	Deadzone         float32 `yaml:"deadzone"`
	EyeHeight        float32 `yaml:"eye_height"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	SFXVolume float32 `yaml:"sfx_volume"`
	Muted     bool    `yaml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		House: HouseConfig{
			LayoutPath: "assets/house.yaml",
		},
		Locomotion: LocomotionConfig{
			GravityY:         -0.1,
			TimeStep:         0.2,
			MaxSteps:         50,
			SurfaceThreshold: 0.9,
			Deadzone:         0.5,
			EyeHeight:        1.6,
		},
		Audio: AudioConfig{
			SFXVolume: 0.8,
			Muted:     false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
