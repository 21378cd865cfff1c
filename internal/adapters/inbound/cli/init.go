package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/config"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/records"
	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# dqscore configuration
#
# weights must cover every dimension the constraints score and sum to 1.0;
# leave them out for an equal split. thresholds default to 90.
#
# weights:
#   completeness: 0.4
#   validity: 0.6
# thresholds:
#   validity: 95
# reference_time: "2026-01-01T00:00:00Z"
# key_sets:
#   customers: [1, 2, 3]

`

func newInitCmd() *cobra.Command {
	var (
		fromRecords string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .dqscore.yaml configuration file",
		Long: "Create a .dqscore.yaml. With --from, constraints are inferred from a sample dataset: " +
			"fields never missing become required, and fields with a single scalar type get a type check.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			abs, err := absPath(dir)
			if err != nil {
				return err
			}
			dest := filepath.Join(abs, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.QualityConfig{Dataset: filepath.Base(abs)}
			if fromRecords != "" {
				batch, err := records.New().Load(fromRecords)
				if err != nil {
					return fmt.Errorf("reading sample: %w", err)
				}
				cfg.Constraints = inferConstraints(batch)
			}

			body, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			if err := os.WriteFile(dest, append([]byte(configHeader), body...), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d constraints\n", config.FileName, len(cfg.Constraints))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromRecords, "from", "", "Sample dataset to infer constraints from")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .dqscore.yaml")

	return cmd
}

var inferredTypes = map[domain.Kind]domain.DataType{
	domain.KindInt:    domain.TypeInteger,
	domain.KindFloat:  domain.TypeFloat,
	domain.KindString: domain.TypeString,
	domain.KindBool:   domain.TypeBoolean,
}

func inferConstraints(batch domain.Batch) []domain.ConstraintSpec {
	type profile struct {
		seen  int
		nulls int
		kinds map[domain.Kind]bool
	}
	var order []string
	profiles := make(map[string]*profile)

	for _, rec := range batch {
		for _, name := range rec.Fields() {
			p, ok := profiles[name]
			if !ok {
				p = &profile{kinds: make(map[domain.Kind]bool)}
				profiles[name] = p
				order = append(order, name)
			}
			p.seen++
			v, _ := rec.Get(name)
			if v.IsNull() {
				p.nulls++
				continue
			}
			p.kinds[v.Kind()] = true
		}
	}

	var out []domain.ConstraintSpec
	for _, name := range order {
		p := profiles[name]
		complete := p.seen == len(batch) && p.nulls == 0
		if complete {
			out = append(out, domain.ConstraintSpec{Field: name, Kind: string(domain.ConstraintRequired)})
		}
		if len(p.kinds) != 1 {
			continue
		}
		for k := range p.kinds {
			if dt, ok := inferredTypes[k]; ok {
				out = append(out, domain.ConstraintSpec{
					Field:    name,
					Kind:     string(domain.ConstraintType),
					DataType: string(dt),
					Nullable: !complete,
				})
			}
		}
	}
	return out
}
