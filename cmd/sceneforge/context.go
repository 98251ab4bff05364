package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sceneforge/internal/config"
)

type commandContext struct {
	configFlag    *string
	scenesDirFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, scenesDirFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		scenesDirFlag: scenesDirFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.scenesDirFlag != nil && strings.TrimSpace(*c.scenesDirFlag) != "" {
			expanded, err := config.ExpandPath(*c.scenesDirFlag)
			if err != nil {
				c.configErr = err
				return
			}
			cfg.Paths.ScenesDir = expanded
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
