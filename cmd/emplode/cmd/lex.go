package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mercere99/MABE2-sub002/internal/lexer"
)

var (
	lexEvalExpr string
	lexShowPos  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an Emplode source file",
	Long: `Tokenize an Emplode program and print the resulting tokens, for
debugging the lexer or inspecting how a script is scanned.

Examples:
  emplode lex config.emp
  emplode lex -e "Var x = 7;" --show-pos`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Printf("Tokenizing: %s (%d bytes)\n---\n", filename, len(input))
	}

	l := lexer.New(input)
	count := 0
	for {
		tok := l.NextToken()
		count++
		printToken(tok)
		if tok.Type == lexer.EOF {
			break
		}
	}

	if verbose {
		fmt.Printf("---\nTotal tokens: %d\n", count)
	}
	return nil
}

func printToken(tok lexer.Token) {
	if lexShowPos {
		fmt.Printf("[%-7s] %q @%s\n", tok.Type, tok.Literal, tok.Pos)
		return
	}
	fmt.Printf("[%-7s] %q\n", tok.Type, tok.Literal)
}
