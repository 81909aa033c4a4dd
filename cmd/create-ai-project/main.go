package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/jakoblorz/create-ai-project/internal/cli"
	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/tui"
	"github.com/rs/zerolog/log"
)

func main() {
	rootCmd := cli.NewRootCommand(filesystem.NewOSFileSystem(), nil)
	if err := rootCmd.Execute(); err != nil {
		var coded *errors.Error
		if stderrors.As(err, &coded) {
			log.Debug().Str("code", string(errors.GetErrorCode(err))).Fields(coded.Details).Msg("Command failed")
		}

		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		if hint := errors.GetHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, tui.HintStyle.Render("Hint: "+hint))
		}
		os.Exit(1)
	}
}
