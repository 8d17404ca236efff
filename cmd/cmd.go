// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// importCommand imports media into the vault
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import media files into a playlist",
		ArgsUsage: "<path>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "caption",
				Aliases: []string{"t"},
				Usage:   "Share caption; imports with the same caption merge into one playlist",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Description used as the playlist title",
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Source application tag",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the import result as JSON",
			},
		},
		Action: r.Import,
	}
}

// listCommand lists playlists
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List playlists",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.List,
	}
}

// showCommand prints one playlist
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show a playlist's items",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: table, csv, or markdown",
				Value:   "table",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
		},
		Action: r.Show,
	}
}

// deleteCommand deletes a whole playlist
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a playlist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID",
				Required: true,
			},
		},
		Action: r.Delete,
	}
}

// removeItemCommand deletes one item from a playlist
func removeItemCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "rm",
		Usage: "Remove one item from a playlist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "item",
				Usage:    "Item ID",
				Required: true,
			},
		},
		Action: r.RemoveItem,
	}
}

// markFailedCommand flags an item the player could not decode
func markFailedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "mark-failed",
		Usage: "Mark a playlist item as failing to decode",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "item",
				Usage:    "Item ID",
				Required: true,
			},
		},
		Action: r.MarkFailed,
	}
}

// probeCommand measures and saves item durations
func probeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "Probe media durations for a playlist and save them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID",
				Required: true,
			},
		},
		Action: r.Probe,
	}
}

// historyCommand lists the import journal
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent imports",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of rows to show",
				Value:   20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// watchCommand keeps the library reconciled while files change underneath it
func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "watch",
		Usage:  "Watch the library and reconcile playlists as files change",
		Action: r.Watch,
	}
}
