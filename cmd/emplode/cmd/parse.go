package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mercere99/MABE2-sub002/internal/events"
	"github.com/mercere99/MABE2-sub002/internal/lexer"
	"github.com/mercere99/MABE2-sub002/internal/parser"
	"github.com/mercere99/MABE2-sub002/internal/symbol"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an Emplode source file and display the AST",
	Long: `Parse an Emplode program against a fresh root scope and print its
Abstract Syntax Tree, without executing anything.

Examples:
  emplode parse config.emp
  emplode parse -e "Var x = 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline source instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	root := symbol.NewRootScope()
	mgr := events.NewManager()
	hook := &parser.EvalHook{}
	p := parser.New(lexer.New(input), filename, root, mgr, hook)
	program, diags := p.ParseProgram()
	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Println(d.Error())
		}
		return fmt.Errorf("parsing failed with %d diagnostic(s)", len(diags))
	}

	fmt.Println("Abstract Syntax Tree:")
	fmt.Println("=====================")
	dumpASTNode(program, 0)
	return nil
}
