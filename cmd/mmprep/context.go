package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/glmack/multilingual-machines/internal/config"
	"github.com/glmack/multilingual-machines/internal/logging"
)

type commandContext struct {
	configFlag   *string
	formatFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, formatFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		formatFlag:   formatFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.formatFlag != nil && strings.TrimSpace(*c.formatFlag) != "" {
			cfg.Output.Format = strings.ToLower(strings.TrimSpace(*c.formatFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = fmt.Errorf("--format: %w", err)
				return
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds a logger writing to the command's stderr.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	var level string
	if c.logLevelFlag != nil {
		level = *c.logLevelFlag
	}
	return logging.NewFromConfig(cfg, level, cmd.ErrOrStderr())
}
