package system

import (
	"fmt"
	"net/url"
	"runtime"
	"strconv"

	"github.com/mobilectl/core/internal/domain/entities"
)

// Platform names an operating system with a known command table.
type Platform string

const (
	PlatformDarwin  Platform = "darwin"
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
)

// ResolvePlatform maps a configured platform name to a Platform;
// "auto" and "" select the running OS.
func ResolvePlatform(name string) Platform {
	if name == "" || name == "auto" {
		return Platform(runtime.GOOS)
	}
	return Platform(name)
}

// DisplayName returns the human name used in messages.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformDarwin:
		return "macOS"
	case PlatformWindows:
		return "Windows"
	case PlatformLinux:
		return "Linux"
	default:
		return string(p)
	}
}

// plan is the command sequence for one action. missingTool replaces the
// error message when a binary is not installed; failure replaces it for
// any other error.
type plan struct {
	commands    []Command
	missingTool string
	failure     string
}

type commandSet interface {
	call(phone string) plan
	sms(phone, body string) plan
	volume(level int) plan
	brightness(level int) plan
	theme(mode entities.ThemeMode) (plan, error)
}

func commandsFor(p Platform) commandSet {
	switch p {
	case PlatformDarwin:
		return darwinCommands{}
	case PlatformWindows:
		return windowsCommands{}
	case PlatformLinux:
		return linuxCommands{}
	default:
		return nil
	}
}

func single(name string, args ...string) []Command {
	return []Command{{Name: name, Args: args}}
}

func unsupportedAuto(p Platform) error {
	return fmt.Errorf("%w: automatic theme is not supported on %s", entities.ErrUnsupportedMode, p.DisplayName())
}

type darwinCommands struct{}

func (darwinCommands) call(phone string) plan {
	return plan{commands: single("open", "tel:"+phone)}
}

func (darwinCommands) sms(phone, body string) plan {
	return plan{commands: single("open", "sms:"+phone+"&body="+url.PathEscape(body))}
}

func (darwinCommands) volume(level int) plan {
	// Output volume runs 0-7 on macOS.
	return plan{commands: single("osascript", "-e", fmt.Sprintf("set volume output volume %d", level*7/100))}
}

func (darwinCommands) brightness(level int) plan {
	return plan{
		commands:    single("brightness", strconv.FormatFloat(float64(level)/100, 'f', -1, 64)),
		missingTool: "the brightness tool is required to control brightness on macOS",
	}
}

func (darwinCommands) theme(mode entities.ThemeMode) (plan, error) {
	script := `tell application "System Events" to tell appearance preferences to set dark mode to %t`
	switch mode {
	case entities.ThemeDark:
		return plan{commands: single("osascript", "-e", fmt.Sprintf(script, true))}, nil
	case entities.ThemeLight:
		return plan{commands: single("osascript", "-e", fmt.Sprintf(script, false))}, nil
	default:
		return plan{}, unsupportedAuto(PlatformDarwin)
	}
}

type windowsCommands struct{}

const personalizeKey = `HKCU\SOFTWARE\Microsoft\Windows\CurrentVersion\Themes\Personalize`

func (windowsCommands) call(phone string) plan {
	return plan{commands: single("cmd", "/c", "start", "", "tel:"+phone)}
}

func (windowsCommands) sms(phone, body string) plan {
	return plan{commands: single("cmd", "/c", "start", "", "sms:"+phone+"?body="+url.PathEscape(body))}
}

func (windowsCommands) volume(level int) plan {
	return plan{
		commands:    single("nircmd.exe", "setsysvolume", strconv.Itoa(level*65535/100)),
		missingTool: "nircmd is required to control volume on Windows",
	}
}

func (windowsCommands) brightness(level int) plan {
	script := fmt.Sprintf("(Get-WmiObject -Namespace root/WMI -Class WmiMonitorBrightnessMethods).WmiSetBrightness(1, %d)", level)
	return plan{
		commands: single("powershell", "-Command", script),
		failure:  "brightness control on Windows requires administrator rights or a dedicated tool",
	}
}

func (windowsCommands) theme(mode entities.ThemeMode) (plan, error) {
	var value string
	switch mode {
	case entities.ThemeDark:
		value = "0"
	case entities.ThemeLight:
		value = "1"
	default:
		return plan{}, unsupportedAuto(PlatformWindows)
	}

	var commands []Command
	for _, name := range []string{"AppsUseLightTheme", "SystemUsesLightTheme"} {
		commands = append(commands, Command{
			Name: "reg",
			Args: []string{"add", personalizeKey, "/v", name, "/t", "REG_DWORD", "/d", value, "/f"},
		})
	}
	return plan{commands: commands}, nil
}

type linuxCommands struct{}

func (linuxCommands) call(phone string) plan {
	return plan{commands: single("xdg-open", "tel:"+phone)}
}

func (linuxCommands) sms(phone, body string) plan {
	return plan{commands: single("xdg-open", "sms:"+phone+"?body="+url.PathEscape(body))}
}

func (linuxCommands) volume(level int) plan {
	return plan{
		commands:    single("amixer", "sset", "Master", fmt.Sprintf("%d%%", level)),
		missingTool: "alsa-utils is required to control volume on Linux",
	}
}

func (linuxCommands) brightness(level int) plan {
	return plan{
		commands:    single("brightnessctl", "set", fmt.Sprintf("%d%%", level)),
		missingTool: "brightnessctl is required to control brightness on Linux",
	}
}

func (linuxCommands) theme(mode entities.ThemeMode) (plan, error) {
	const missing = "a GNOME desktop with gsettings is required to change the theme on Linux"
	switch mode {
	case entities.ThemeDark:
		return plan{commands: single("gsettings", "set", "org.gnome.desktop.interface", "gtk-theme", "Adwaita-dark"), missingTool: missing}, nil
	case entities.ThemeLight:
		return plan{commands: single("gsettings", "set", "org.gnome.desktop.interface", "gtk-theme", "Adwaita"), missingTool: missing}, nil
	default:
		return plan{}, unsupportedAuto(PlatformLinux)
	}
}
