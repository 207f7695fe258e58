package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/viewer"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	// Check for valid key formats and detect conflicts
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()

	for action, keys := range keybindings {
		if !isKnownAction(action) {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, keyStr := range keys {
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %v", keyStr, action, err)
			}

			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string format
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	if keyStr == "" {
		return fmt.Errorf("empty key string")
	}
	parts := strings.Split(keyStr, "+")

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	for i := 0; i < len(parts)-1; i++ {
		if !isModifier(parts[i]) {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// validateMousebindings checks every mouse string against the known buttons and wheel directions
func validateMousebindings(mousebindings map[string][]string) error {
	seen := make(map[string]string)
	for action, mouseStrs := range mousebindings {
		if !isKnownAction(action) {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, mouseStr := range mouseStrs {
			if _, ok := parseMouseString(mouseStr); !ok {
				return fmt.Errorf("invalid mouse action '%s' for action '%s'", mouseStr, action)
			}
			if existing, exists := seen[mouseStr]; exists {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", mouseStr, existing, action)
			}
			seen[mouseStr] = action
		}
	}
	return nil
}

func isModifier(s string) bool {
	switch strings.ToLower(s) {
	case "shift", "ctrl", "alt":
		return true
	default:
		return false
	}
}

// getValidKeyNames returns a set of valid key names
func getValidKeyNames() map[string]bool {
	valid := make(map[string]bool)
	for name := range getKeyMapping() {
		valid[name] = true
	}
	return valid
}

// ChromeSettings is the on-disk form of the chrome configuration
type ChromeSettings struct {
	CloseEnabled bool    `json:"close_enabled"`
	CloseText    string  `json:"close_text"`
	CloseWidth   float64 `json:"close_width"`
	CloseHeight  float64 `json:"close_height"`
	CloseImage   string  `json:"close_image,omitempty"` // optional background image path

	DeleteEnabled bool    `json:"delete_enabled"`
	DeleteText    string  `json:"delete_text"`
	DeleteWidth   float64 `json:"delete_width"`
	DeleteHeight  float64 `json:"delete_height"`
	DeleteOpacity float64 `json:"delete_opacity"`
	DeleteImage   string  `json:"delete_image,omitempty"`

	ButtonFontSize    float64 `json:"button_font_size"`
	IndicatorEnabled  bool    `json:"indicator_enabled"`
	IndicatorFontSize float64 `json:"indicator_font_size"`
	HideStatusBar     bool    `json:"hide_status_bar"`
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth         int                 `json:"window_width"`
	WindowHeight        int                 `json:"window_height"`
	Fullscreen          bool                `json:"fullscreen"`
	HelpFontSize        float64             `json:"help_font_size"`
	SortMethod          int                 `json:"sort_method"`
	CacheSize           int                 `json:"cache_size"`
	PreloadEnabled      bool                `json:"preload_enabled"`
	PreloadCount        int                 `json:"preload_count"`
	FetchTimeoutSeconds int                 `json:"fetch_timeout_seconds"`
	FadeMillis          int                 `json:"fade_millis"`
	Chrome              ChromeSettings      `json:"chrome"`
	Keybindings         map[string][]string `json:"keybindings"`
	Mousebindings       map[string][]string `json:"mousebindings"`
	Mouse               MouseSettings       `json:"mouse"`
}

// FetchTimeout returns the remote image request timeout
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// FadeDuration returns the present/dismiss fade length
func (c Config) FadeDuration() time.Duration {
	return time.Duration(c.FadeMillis) * time.Millisecond
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "lightbox.json"
	}
	return filepath.Join(homeDir, ".lightbox.json")
}

func defaultChromeSettings() ChromeSettings {
	d := viewer.DefaultChrome()
	return ChromeSettings{
		CloseEnabled:      d.Close.Enabled,
		CloseText:         d.Close.Text,
		CloseWidth:        d.Close.Size.W,
		CloseHeight:       d.Close.Size.H,
		DeleteEnabled:     d.Delete.Enabled,
		DeleteText:        d.Delete.Text,
		DeleteWidth:       d.Delete.Size.W,
		DeleteHeight:      d.Delete.Size.H,
		DeleteOpacity:     d.Delete.Opacity,
		ButtonFontSize:    d.Close.TextStyle.Size,
		IndicatorEnabled:  d.Indicator.Enabled,
		IndicatorFontSize: d.Indicator.TextStyle.Size,
		HideStatusBar:     d.HideStatusBar,
	}
}

func defaultConfig() Config {
	return Config{
		WindowWidth:         defaultWidth,
		WindowHeight:        defaultHeight,
		Fullscreen:          false,
		HelpFontSize:        24.0,
		SortMethod:          SortNatural,
		CacheSize:           16,
		PreloadEnabled:      true,
		PreloadCount:        4,
		FetchTimeoutSeconds: 30,
		FadeMillis:          250,
		Chrome:              defaultChromeSettings(),
		Keybindings:         GetDefaultKeybindings(),
		Mousebindings:       GetDefaultMousebindings(),
		Mouse:               GetDefaultMouseSettings(),
	}
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	warn := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("Warning: %s", msg)
		result.Status = "Warning"
		result.Warnings = append(result.Warnings, msg)
	}

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Validate help font size (minimum 12px for readability)
	if config.HelpFontSize <= 12.0 {
		config.HelpFontSize = 24.0
	}

	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate preload count (minimum 1, maximum 16)
	if config.PreloadCount < 1 {
		config.PreloadCount = 4
	} else if config.PreloadCount > 16 {
		config.PreloadCount = 16
	}

	if config.FetchTimeoutSeconds < 1 {
		config.FetchTimeoutSeconds = 30
	} else if config.FetchTimeoutSeconds > 300 {
		config.FetchTimeoutSeconds = 300
	}

	if config.FadeMillis < 0 {
		config.FadeMillis = 0
	} else if config.FadeMillis > 2000 {
		config.FadeMillis = 2000
	}

	validateChromeSettings(&config.Chrome)

	// Fill in missing keybindings with defaults
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		for action, defaultKeys := range GetDefaultKeybindings() {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}
		if err := validateKeybindings(config.Keybindings); err != nil {
			warn("Keybinding errors: %v", err)
			config.Keybindings = GetDefaultKeybindings()
		}
	}

	if config.Mousebindings == nil {
		config.Mousebindings = GetDefaultMousebindings()
	} else {
		for action, defaultMouse := range GetDefaultMousebindings() {
			if _, exists := config.Mousebindings[action]; !exists {
				config.Mousebindings[action] = defaultMouse
			}
		}
		if err := validateMousebindings(config.Mousebindings); err != nil {
			warn("Mouse binding errors: %v", err)
			config.Mousebindings = GetDefaultMousebindings()
		}
	}

	validateMouseSettings(&config.Mouse)

	result.Config = config
	return result
}

// validateChromeSettings replaces out-of-range chrome values with defaults
func validateChromeSettings(s *ChromeSettings) {
	d := defaultChromeSettings()

	if s.CloseWidth <= 0 || s.CloseHeight <= 0 {
		s.CloseWidth, s.CloseHeight = d.CloseWidth, d.CloseHeight
	}
	if s.DeleteWidth <= 0 || s.DeleteHeight <= 0 {
		s.DeleteWidth, s.DeleteHeight = d.DeleteWidth, d.DeleteHeight
	}
	if s.DeleteOpacity < 0 || s.DeleteOpacity > 1 {
		s.DeleteOpacity = d.DeleteOpacity
	}
	if s.ButtonFontSize < 8 {
		s.ButtonFontSize = d.ButtonFontSize
	}
	if s.IndicatorFontSize < 8 {
		s.IndicatorFontSize = d.IndicatorFontSize
	}
}

func validateMouseSettings(m *MouseSettings) {
	d := GetDefaultMouseSettings()
	if m.WheelSensitivity <= 0 {
		m.WheelSensitivity = d.WheelSensitivity
	}
	if m.DoubleClickTime < 100 || m.DoubleClickTime > 2000 {
		m.DoubleClickTime = d.DoubleClickTime
	}
	if m.DragThreshold < 0 {
		m.DragThreshold = d.DragThreshold
	}
	if m.DragSensitivity <= 0 {
		m.DragSensitivity = d.DragSensitivity
	}
}

// toChrome converts the on-disk settings to the viewer's chrome configuration.
// Button images that fail to load fall back to text buttons.
func (s ChromeSettings) toChrome() viewer.ChromeConfig {
	chrome := viewer.DefaultChrome()

	chrome.Close.Enabled = s.CloseEnabled
	chrome.Close.Text = s.CloseText
	chrome.Close.Size = viewer.Size{W: s.CloseWidth, H: s.CloseHeight}
	chrome.Close.TextStyle.Size = s.ButtonFontSize
	chrome.Close.Image = loadButtonImage(s.CloseImage)

	chrome.Delete.Enabled = s.DeleteEnabled
	chrome.Delete.Text = s.DeleteText
	chrome.Delete.Size = viewer.Size{W: s.DeleteWidth, H: s.DeleteHeight}
	chrome.Delete.Opacity = s.DeleteOpacity
	chrome.Delete.TextStyle.Size = s.ButtonFontSize
	chrome.Delete.Image = loadButtonImage(s.DeleteImage)

	chrome.Indicator.Enabled = s.IndicatorEnabled
	chrome.Indicator.TextStyle = viewer.TextStyle{
		Color: color.RGBA{255, 255, 255, 255},
		Size:  s.IndicatorFontSize,
	}
	chrome.HideStatusBar = s.HideStatusBar

	return chrome
}

func loadButtonImage(path string) image.Image {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Failed to read button image %s: %v", path, err)
		return nil
	}
	img, err := decodeImage(data, path)
	if err != nil {
		log.Printf("Warning: %v", err)
		return nil
	}
	return ebiten.NewImageFromImage(img)
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}
