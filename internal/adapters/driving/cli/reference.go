package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish/internal/adapters/driven/refdata"
	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/services"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Inspect reference tables",
	Long: `Inspect and validate the static tables behind chart computations:
body dignities and friendships, sign rulers, divisional schemes, dasha
systems, nakshatras, the compound relationship table and time units.`,
}

var referenceShowCmd = &cobra.Command{
	Use:       "show [section]",
	Short:     "Show reference tables",
	Long:      "Show a summary of the active tables, or one section in full.\n\nSections: " + strings.Join(domain.ReferenceSections, ", "),
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: domain.ReferenceSections,
	RunE:      runReferenceShow,
}

var referenceValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate reference tables",
	Long: `Validate the active tables, or an override file merged over the
embedded defaults. Exits non-zero when validation fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReferenceValidate,
}

func init() {
	referenceCmd.AddCommand(referenceShowCmd)
	referenceCmd.AddCommand(referenceValidateCmd)
	rootCmd.AddCommand(referenceCmd)
}

func runReferenceShow(cmd *cobra.Command, args []string) error {
	if referenceService == nil {
		return errors.New("reference service not configured")
	}
	ref := referenceService.Current()

	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if asJSON {
			return printJSON(cmd, ref)
		}
		printReferenceSummary(cmd, ref)
		return nil
	}

	section := args[0]
	if asJSON {
		v, err := referenceSection(ref, section)
		if err != nil {
			return err
		}
		return printJSON(cmd, v)
	}
	return printReferenceSection(cmd, ref, section)
}

func printReferenceSummary(cmd *cobra.Command, ref *domain.ReferenceData) {
	printTitle(cmd, "Reference data")
	printField(cmd, "Source", "%s", referenceService.Source())
	printField(cmd, "Bodies", "%d", len(ref.Bodies))
	printField(cmd, "Schemes", "%d", len(ref.Schemes))
	printField(cmd, "Dasha", "%s", strings.Join(sortedSystemKeys(ref), ", "))
	printField(cmd, "Nakshatras", "%d", len(ref.Nakshatras))
	printField(cmd, "Compound", "%d rules", len(ref.Compound))
	printField(cmd, "Time units", "%d", len(ref.TimeUnits))
}

func referenceSection(ref *domain.ReferenceData, section string) (any, error) {
	v, ok := ref.Section(section)
	if !ok {
		return nil, fmt.Errorf("unknown section %q (want one of %s)", section, strings.Join(domain.ReferenceSections, ", "))
	}
	return v, nil
}

func printReferenceSection(cmd *cobra.Command, ref *domain.ReferenceData, section string) error {
	var headers []string
	var rows [][]string

	switch section {
	case domain.SectionBodies:
		headers = []string{"Body", "Own", "Exalted", "Debilitated", "Friends", "Enemies"}
		keys := make([]string, 0, len(ref.Bodies))
		for k := range ref.Bodies {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		for _, k := range keys {
			a := ref.Bodies[domain.BodyKey(k)]
			rows = append(rows, []string{
				k,
				joinInts(a.OwnSigns),
				formatSignDegree(a.Exaltation),
				formatSignDegree(a.Debilitation),
				joinBodies(a.Friends),
				joinBodies(a.Enemies),
			})
		}
	case domain.SectionSigns:
		headers = []string{"Sign", "Ruler"}
		for sign := 1; sign <= domain.SignCount; sign++ {
			ruler, _ := ref.Ruler(sign)
			rows = append(rows, []string{strconv.Itoa(sign), ruler.String()})
		}
	case domain.SectionSchemes:
		headers = []string{"Chart", "Name", "Divisor", "Traditions"}
		for _, s := range ref.Schemes {
			traditions := make([]string, len(s.Traditions))
			for i, t := range s.Traditions {
				traditions[i] = t.String()
			}
			rows = append(rows, []string{s.Key, s.Name, strconv.Itoa(s.Divisor), strings.Join(traditions, ",")})
		}
	case domain.SectionDasha:
		headers = []string{"System", "Name", "Mode", "Years", "Lords"}
		for _, key := range sortedSystemKeys(ref) {
			sys := ref.DashaSystems[key]
			rows = append(rows, []string{
				key, sys.Name, sys.Mode.String(),
				strconv.FormatFloat(sys.TotalYears, 'g', -1, 64),
				strconv.Itoa(len(sys.Sequence)),
			})
		}
	case domain.SectionNakshatras:
		headers = []string{"#", "Name", "Lord", "Padas"}
		for _, n := range ref.Nakshatras {
			rows = append(rows, []string{strconv.Itoa(n.Index + 1), n.Name, n.Lord.String(), strconv.Itoa(n.Padas)})
		}
	case domain.SectionCompound:
		headers = []string{"Natural", "Temporary", "Compound"}
		for _, r := range ref.Compound {
			rows = append(rows, []string{r.Natural.String(), r.Temporary.String(), r.Compound.String()})
		}
	case domain.SectionTimeUnits:
		headers = []string{"Unit", "Parent", "Divisor"}
		for _, u := range ref.TimeUnits {
			rows = append(rows, []string{u.Key, valueOr(u.Parent, "day"), strconv.FormatFloat(u.Divisor, 'g', -1, 64)})
		}
	default:
		_, err := referenceSection(ref, section)
		return err
	}

	printTable(cmd, headers, rows)
	return nil
}

func runReferenceValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		store, err := refdata.NewStore(refdata.Options{Path: args[0], Validate: services.ValidateReference})
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		cmd.Printf("%s is valid.\n", store.Path())
		return nil
	}

	if referenceService == nil {
		return errors.New("reference service not configured")
	}
	if err := referenceService.Validate(referenceService.Current()); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	cmd.Printf("Reference data (%s) is valid.\n", referenceService.Source())
	return nil
}

func sortedSystemKeys(ref *domain.ReferenceData) []string {
	keys := make([]string, 0, len(ref.DashaSystems))
	for k := range ref.DashaSystems {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func joinBodies(keys []domain.BodyKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ",")
}

func formatSignDegree(p *domain.SignDegree) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d %g°", p.Sign, p.Degree)
}
