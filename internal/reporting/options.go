package reporting

import (
	"fmt"
	"strings"
)

const (
	unknownFormatTemplateConstant    = "unknown output format %q (expected text, yaml or json)"
	unknownColorModeTemplateConstant = "unknown color mode %q (expected auto, always or never)"
)

// Format selects how reports are written.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// UnmarshalText parses a format name. An empty value selects text.
func (format *Format) UnmarshalText(text []byte) error {
	candidate := Format(strings.ToLower(strings.TrimSpace(string(text))))
	switch candidate {
	case "":
		*format = FormatText
	case FormatText, FormatYAML, FormatJSON:
		*format = candidate
	default:
		return fmt.Errorf(unknownFormatTemplateConstant, string(text))
	}
	return nil
}

// ColorMode selects when text output is colored.
type ColorMode string

// Supported color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// UnmarshalText parses a color mode. An empty value selects auto.
func (mode *ColorMode) UnmarshalText(text []byte) error {
	candidate := ColorMode(strings.ToLower(strings.TrimSpace(string(text))))
	switch candidate {
	case "":
		*mode = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
		*mode = candidate
	default:
		return fmt.Errorf(unknownColorModeTemplateConstant, string(text))
	}
	return nil
}
