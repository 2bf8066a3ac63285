package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vampirenirmal/novelagent/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Run:   runConfig,
	}
	cmd.Flags().Bool("init", false, "Write the resolved configuration to the config file")
	RootCmd.AddCommand(cmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		exitErr("load config", err)
	}

	if write, _ := cmd.Flags().GetBool("init"); write {
		if err := config.Save(cfg); err != nil {
			exitErr("save config", err)
		}
		fmt.Printf("configuration written to %s\n", config.Path())
		return
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		exitErr("marshal config", err)
	}
	fmt.Printf("# %s\n%s", config.Path(), data)
}
