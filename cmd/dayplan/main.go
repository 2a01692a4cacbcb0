package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/ports"
	"github.com/julianstephens/dayplan/internal/storage/sqlite"
	"github.com/julianstephens/dayplan/internal/store"
	"github.com/julianstephens/dayplan/internal/tui"
)

// CLI mirrors the teacher's cmd/daylit/main.go CLI struct/subcommand
// nesting, trimmed to the commands SPEC_FULL's core actually needs.
type CLI struct {
	Version   kong.VersionFlag
	DebugMode bool   `help:"Enable debug logging." name:"debug"`
	Config    string `help:"Database file path." type:"string" default:"~/.config/dayplan/dayplan.db" env:"DAYPLAN_CONFIG"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize dayplan storage."`
	Schedule cli.ScheduleCmd `cmd:"" help:"Generate and print a day's schedule."`
	UpNext   cli.UpNextCmd   `cmd:"" help:"Show the current or next-best task."`
	Tui      TuiCmd          `cmd:"" help:"Launch the interactive timeline TUI." default:"1"`

	Template struct {
		Add    cli.TemplateAddCmd    `cmd:"" help:"Add a new template."`
		List   cli.TemplateListCmd   `cmd:"" help:"List templates."`
		Edit   cli.TemplateEditCmd   `cmd:"" help:"Edit an existing template."`
		Delete cli.TemplateDeleteCmd `cmd:"" help:"Soft-delete a template."`
	} `cmd:"" help:"Manage templates."`

	Instance struct {
		Mark cli.InstanceMarkCmd `cmd:"" help:"Mark a template's occurrence complete."`
		Undo cli.InstanceUndoCmd `cmd:"" help:"Revert a template's occurrence to pending."`
	} `cmd:"" help:"Manage per-date instance overrides."`

	Settings struct {
		Show cli.SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
		Set  cli.SettingsSetCmd  `cmd:"" help:"Set a setting value."`
	} `cmd:"" help:"Manage sleep/wake settings."`

	db *sqlite.Store
}

// TuiCmd launches the bubbletea timeline browser.
type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	return tui.Run(ctx.Store)
}

func (c *CLI) AfterApply(kctx *kong.Context) error {
	configPath := os.ExpandEnv(c.Config)
	configDir := filepath.Dir(configPath)

	if err := logger.Init(logger.Config{Debug: c.DebugMode, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	c.db = sqlite.NewStore(configPath)

	if kctx.Command() == "init" {
		return nil
	}

	if err := c.db.Load(); err != nil {
		return err
	}
	return nil
}

func main() {
	kongCLI := CLI{}
	kctx := kong.Parse(&kongCLI,
		kong.Name(constants.AppName),
		kong.Description("Daily structure scheduler / time-blocking companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	appCtx := &cli.Context{DB: kongCLI.db}

	if kctx.Command() != "init" {
		vmParams := ports.ResponsiveParams{
			RowHeight:                  constants.DefaultRowHeight,
			LaneCap:                    constants.DefaultLaneCap,
			GapMinMinutes:              constants.DefaultGapMinMinutesDesktop,
			AnchorBufferDefaultMinutes: constants.DefaultAnchorBufferMinutes,
		}
		composer := store.New(kongCLI.db, kongCLI.db, kongCLI.db, vmParams)
		if err := composer.Load(); err != nil {
			logger.Error("Failed to load store", "error", err)
			os.Exit(1)
		}
		appCtx.Store = composer
	}

	if err := kctx.Run(appCtx); err != nil {
		logger.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
