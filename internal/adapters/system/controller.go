package system

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/infrastructure/logger"
)

const smsPreviewLen = 50

// Controller implements ports.DeviceController with per-platform command
// tables. Inputs are assumed validated.
type Controller struct {
	platform Platform
	commands commandSet
	runner   Runner
	timeout  time.Duration
	logger   *logger.Logger
}

// NewController creates a controller for platform. A zero timeout leaves
// commands bounded only by the caller's context.
func NewController(platform Platform, runner Runner, timeout time.Duration, log *logger.Logger) *Controller {
	return &Controller{
		platform: platform,
		commands: commandsFor(platform),
		runner:   runner,
		timeout:  timeout,
		logger:   log.WithComponent("device_controller"),
	}
}

// PlatformName returns the display name of the target platform
func (c *Controller) PlatformName() string {
	return c.platform.DisplayName()
}

// Supported reports whether the platform has a command table
func (c *Controller) Supported() bool {
	return c.commands != nil
}

func (c *Controller) Call(ctx context.Context, phone string) (string, error) {
	if err := c.checkSupported(entities.ActionCall); err != nil {
		return "", err
	}
	if err := c.run(ctx, entities.ActionCall, c.commands.call(phone)); err != nil {
		return "", err
	}
	return fmt.Sprintf("dialing %s", phone), nil
}

func (c *Controller) SendSMS(ctx context.Context, phone, message string) (string, error) {
	if err := c.checkSupported(entities.ActionSMS); err != nil {
		return "", err
	}
	if err := c.run(ctx, entities.ActionSMS, c.commands.sms(phone, message)); err != nil {
		return "", err
	}
	return fmt.Sprintf("sending SMS to %s: %s", phone, preview(message)), nil
}

func (c *Controller) SetVolume(ctx context.Context, level int) (string, error) {
	if err := c.checkSupported(entities.ActionVolume); err != nil {
		return "", err
	}
	if err := c.run(ctx, entities.ActionVolume, c.commands.volume(level)); err != nil {
		return "", err
	}
	return fmt.Sprintf("volume set to %d%%", level), nil
}

func (c *Controller) SetBrightness(ctx context.Context, level int) (string, error) {
	if err := c.checkSupported(entities.ActionBrightness); err != nil {
		return "", err
	}
	if err := c.run(ctx, entities.ActionBrightness, c.commands.brightness(level)); err != nil {
		return "", err
	}
	return fmt.Sprintf("brightness set to %d%%", level), nil
}

func (c *Controller) SetTheme(ctx context.Context, mode entities.ThemeMode) (string, error) {
	if err := c.checkSupported(entities.ActionTheme); err != nil {
		return "", err
	}

	p, err := c.commands.theme(mode)
	if err != nil {
		return "", &entities.ActionError{Action: entities.ActionTheme, Reason: err.Error(), Err: err}
	}
	if err := c.run(ctx, entities.ActionTheme, p); err != nil {
		return "", err
	}
	return fmt.Sprintf("theme set to %s", mode), nil
}

func (c *Controller) checkSupported(action entities.Action) error {
	if c.commands != nil {
		return nil
	}
	return &entities.ActionError{
		Action: action,
		Reason: fmt.Sprintf("unsupported platform: %s", c.platform),
		Err:    entities.ErrUnsupportedPlatform,
	}
}

// run executes every command of p in order and stops at the first failure.
func (c *Controller) run(ctx context.Context, action entities.Action, p plan) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	for _, cmd := range p.commands {
		c.logger.LogCommand(cmd.Name, cmd.Args)

		err := c.runner.Run(ctx, cmd)
		if err == nil {
			continue
		}

		c.logger.Errorw("Command failed", "action", action.String(), "command", cmd.String(), "error", err)

		switch {
		case errors.Is(err, exec.ErrNotFound) && p.missingTool != "":
			return &entities.ActionError{Action: action, Reason: p.missingTool, Err: errors.Join(entities.ErrToolMissing, err)}
		case errors.Is(err, exec.ErrNotFound):
			return &entities.ActionError{Action: action, Err: errors.Join(entities.ErrToolMissing, err)}
		case p.failure != "":
			return &entities.ActionError{Action: action, Reason: p.failure, Err: err}
		default:
			return &entities.ActionError{Action: action, Err: err}
		}
	}

	return nil
}

func preview(message string) string {
	runes := []rune(message)
	if len(runes) <= smsPreviewLen {
		return message
	}
	return string(runes[:smsPreviewLen]) + "..."
}
