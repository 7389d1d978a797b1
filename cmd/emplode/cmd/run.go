package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mercere99/MABE2-sub002/internal/ast"
	"github.com/mercere99/MABE2-sub002/internal/events"
	"github.com/mercere99/MABE2-sub002/internal/lexer"
	"github.com/mercere99/MABE2-sub002/internal/parser"
	"github.com/mercere99/MABE2-sub002/internal/symbol"
	"github.com/mercere99/MABE2-sub002/pkg/emplode"
)

var (
	runEvalExpr string
	runDumpAST  bool
	runTrace    bool
	runWrite    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an Emplode configuration script",
	Long: `Load and execute an Emplode configuration script, the same way a
host simulation would at startup.

Examples:
  # Run a script file
  emplode run config.emp

  # Evaluate an inline statement
  emplode run -e "Var x = 7;"

  # Run with an AST dump (for debugging)
  emplode run --dump-ast config.emp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "run inline source instead of reading from file")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump the parsed AST before running (independent parse, see note in source)")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "enable trace-level logging of the evaluator")
	runCmd.Flags().BoolVar(&runWrite, "write", false, "after running, serialize the resulting root scope to stdout")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(runEvalExpr, args)
	if err != nil {
		return err
	}

	if runDumpAST {
		// Independent parse purely for display: pkg/emplode.Interpreter
		// doesn't expose the AST it builds internally, so dumping it means
		// re-parsing against a throwaway scope rather than the one that
		// actually executes below.
		if err := dumpProgramAST(input, filename); err != nil {
			return err
		}
	}

	var i *emplode.Interpreter
	if runTrace {
		i = emplode.New(emplode.WithLogger(traceLogger()))
	} else {
		i = emplode.New()
	}

	if err := i.LoadStatements([]string{input}, filename); err != nil {
		return fmt.Errorf("running %s: %w", filename, err)
	}

	if runWrite {
		if err := i.Write(os.Stdout); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}

	return nil
}

func readSource(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}

func dumpProgramAST(input, filename string) error {
	root := symbol.NewRootScope()
	mgr := events.NewManager()
	hook := &parser.EvalHook{}
	p := parser.New(lexer.New(input), filename, root, mgr, hook)
	program, diags := p.ParseProgram()
	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		return fmt.Errorf("parsing %s failed with %d diagnostic(s)", filename, len(diags))
	}
	fmt.Println("AST:")
	dumpASTNode(program, 0)
	fmt.Println()
	return nil
}

func dumpASTNode(node ast.Node, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	if node == nil {
		fmt.Printf("%s<nil>\n", pad)
		return
	}
	switch n := node.(type) {
	case *ast.Block:
		fmt.Printf("%sBlock (%d statements)\n", pad, len(n.Children))
		for _, c := range n.Children {
			dumpASTNode(c, indent+1)
		}
	case *ast.Leaf:
		fmt.Printf("%sLeaf: %s\n", pad, n.Sym.DebugString())
	case *ast.UnaryOp:
		fmt.Printf("%sUnaryOp (%s)\n", pad, n.Op)
		dumpASTNode(n.Operand, indent+1)
	case *ast.BinaryOp:
		fmt.Printf("%sBinaryOp (%s)\n", pad, n.Op)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.Assign:
		fmt.Printf("%sAssign\n", pad)
		dumpASTNode(n.LHS, indent+1)
		dumpASTNode(n.RHS, indent+1)
	case *ast.If:
		fmt.Printf("%sIf\n", pad)
		dumpASTNode(n.Cond, indent+1)
		dumpASTNode(n.Then, indent+1)
		if n.Else != nil {
			dumpASTNode(n.Else, indent+1)
		}
	case *ast.While:
		fmt.Printf("%sWhile\n", pad)
		dumpASTNode(n.Cond, indent+1)
		dumpASTNode(n.Body, indent+1)
	case *ast.Call:
		fmt.Printf("%sCall (%d args)\n", pad, len(n.Args))
		dumpASTNode(n.Fn, indent+1)
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	case *ast.Event:
		fmt.Printf("%sEvent (%s, %d args)\n", pad, n.Name, len(n.Args))
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
		dumpASTNode(n.Action, indent+1)
	case *ast.Return:
		fmt.Printf("%sReturn\n", pad)
		if n.Value != nil {
			dumpASTNode(n.Value, indent+1)
		}
	default:
		fmt.Printf("%s%T\n", pad, node)
	}
}
