// Package cli wires the execution-context core into three cobra
// subcommands: deploy, exec, and eval.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/empower1/contractvm/internal/contracts"
	"github.com/empower1/contractvm/internal/crypto"
	"github.com/empower1/contractvm/internal/database"
	"github.com/empower1/contractvm/internal/eval"
	"github.com/empower1/contractvm/internal/parser"
	"github.com/empower1/contractvm/internal/types"
	"github.com/empower1/contractvm/internal/vm"
)

// NewCLI builds the contractvm root command.
func NewCLI(logger *zap.SugaredLogger) *cobra.Command {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:   "contractvm",
		Short: "Deploy and execute smart contracts against a local execution-context store.",
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "contractvm.db", "path to the contract store")

	rootCmd.AddCommand(newDeployCmd(&dbPath, logger))
	rootCmd.AddCommand(newExecCmd(&dbPath, logger))
	rootCmd.AddCommand(newEvalCmd(&dbPath, logger))

	return rootCmd
}

func openStore(dbPath string, logger *zap.SugaredLogger) (*database.Store, error) {
	return database.Open(dbPath, parser.New(), eval.New(), contracts.New(), logger)
}

func newDeployCmd(dbPath *string, logger *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <contract-name> <source-file>",
		Short: "Parse a contract and deploy it under contract-name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contractName, sourcePath := args[0], args[1]
			source, err := os.ReadFile(sourcePath)
			if err != nil {
				return fmt.Errorf("read %s: %w", sourcePath, err)
			}

			store, err := openStore(*dbPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			owned, err := vm.NewOwnedEnvironment(store, parser.New(), eval.New(), contracts.New(), logger)
			if err != nil {
				return err
			}
			if err := owned.InitializeContract(contractName, string(source)); err != nil {
				return fmt.Errorf("deploy %s: %w", contractName, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deployed %s\n", contractName)
			return nil
		},
	}
}

func newExecCmd(dbPath *string, logger *zap.SugaredLogger) *cobra.Command {
	var senderDID string

	cmd := &cobra.Command{
		Use:   "exec <contract-name> <function> [args...]",
		Short: "Execute a public function as a transaction",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contractName, fnName, rest := args[0], args[1], args[2:]

			sender, err := resolveSender(senderDID)
			if err != nil {
				return err
			}

			argExprs, err := parseArgValues(rest)
			if err != nil {
				return err
			}

			store, err := openStore(*dbPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			owned, err := vm.NewOwnedEnvironment(store, parser.New(), eval.New(), contracts.New(), logger)
			if err != nil {
				return err
			}

			result, assetMap, err := owned.ExecuteTransaction(sender, contractName, fnName, argExprs)
			if err != nil {
				return fmt.Errorf("execute %s.%s: %w", contractName, fnName, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "result: %s\n", result)
			fmt.Fprintf(cmd.OutOrStdout(), "asset transfers: %s\n", assetMap)
			return nil
		},
	}
	cmd.Flags().StringVar(&senderDID, "sender", "", "did:key of the sending principal (generates a fresh one if omitted)")
	return cmd
}

func newEvalCmd(dbPath *string, logger *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <contract-name> <expression>",
		Short: "Evaluate a read-only expression against a deployed contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contractName, expression := args[0], args[1]

			store, err := openStore(*dbPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			owned, err := vm.NewOwnedEnvironment(store, parser.New(), eval.New(), contracts.New(), logger)
			if err != nil {
				return err
			}

			exec := owned.GetExecEnvironment(nil)
			result, err := exec.EvalReadOnly(contractName, expression)
			if err != nil {
				return fmt.Errorf("eval against %s: %w", contractName, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result)
			return nil
		},
	}
}

func resolveSender(did string) (types.PrincipalData, error) {
	if did != "" {
		return types.PrincipalFromDID(did)
	}
	priv, err := crypto.GenerateECDSAKeyPair()
	if err != nil {
		return types.PrincipalData{}, err
	}
	return types.NewPrincipalFromPublicKey(&priv.PublicKey)
}

func parseArgValues(raw []string) ([]vm.Expression, error) {
	p := parser.New()
	exprs := make([]vm.Expression, 0, len(raw))
	for _, a := range raw {
		parsed, err := p.Parse(a)
		if err != nil {
			return nil, fmt.Errorf("parse argument %q: %w", a, err)
		}
		if len(parsed) != 1 {
			return nil, fmt.Errorf("argument %q did not parse to a single value", a)
		}
		if _, ok := parsed[0].MatchAtomValue(); !ok {
			return nil, fmt.Errorf("argument %q is not a literal value", a)
		}
		exprs = append(exprs, parsed[0])
	}
	return exprs, nil
}
