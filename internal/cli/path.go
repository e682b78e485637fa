package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/hdkit/internal/output"
	"github.com/mrz1836/hdkit/pkg/bip32path"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// PathElementResult describes one parsed path element.
type PathElementResult struct {
	Position int     `json:"position"`
	Text     string  `json:"text"`
	Valid    bool    `json:"valid"`
	Hardened bool    `json:"hardened"`
	Index    *uint32 `json:"index,omitempty"`
}

// PathResult is the output of `hdkit path parse`.
type PathResult struct {
	Input    string              `json:"input"`
	Path     string              `json:"path"`
	Depth    int                 `json:"depth"`
	Valid    bool                `json:"valid"`
	Elements []PathElementResult `json:"elements"`
	Indices  []uint32            `json:"indices,omitempty"`
}

// Text implements output.Texter.
func (r PathResult) Text(w io.Writer) error {
	status := "valid"
	if !r.Valid {
		status = "invalid"
	}
	if _, err := fmt.Fprintf(w, "Path: %s (%s, depth %d)\n", r.Path, status, r.Depth); err != nil {
		return err
	}
	if len(r.Elements) == 0 {
		return nil
	}

	tbl := output.NewTable("POS", "ELEMENT", "INDEX", "HARDENED")
	for _, e := range r.Elements {
		index := "-"
		if e.Index != nil {
			index = strconv.FormatUint(uint64(*e.Index), 10)
		}
		tbl.AddRow(strconv.Itoa(e.Position), e.Text, index, strconv.FormatBool(e.Hardened))
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return tbl.Render(w)
}

func newPathResult(input string, p bip32path.Path) PathResult {
	res := PathResult{
		Input:    input,
		Path:     p.String(),
		Depth:    p.Len(),
		Valid:    p.IsValid(),
		Elements: make([]PathElementResult, 0, p.Len()),
	}
	for i, e := range p.All() {
		er := PathElementResult{
			Position: i,
			Text:     e.String(),
			Valid:    e.IsValid(),
			Hardened: e.IsHardened(),
		}
		if idx, err := e.Index(); err == nil {
			er.Index = &idx
		}
		res.Elements = append(res.Elements, er)
	}
	if indices, err := p.ToList(); err == nil {
		res.Indices = indices
	}
	return res
}

func (a *app) pathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Work with BIP32 derivation paths",
	}

	var strict bool
	parse := &cobra.Command{
		Use:   "parse <path>",
		Short: "Parse a derivation path",
		Long: `Parse a BIP32 derivation path into its elements.

Hardened elements may be marked with ' or p. Elements that do not parse are
reported as invalid rather than rejected; pass --strict to fail instead.`,
		Example: `  hdkit path parse "m/44'/60'/0'/0/0"
  hdkit path parse m/84p/0p/0p -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := GetCmdContext(cmd)
			p := bip32path.Parse(args[0])

			if limit := c.Config.Derivation.MaxDepth; p.Len() > limit {
				return kiterr.WithDetails(kiterr.ErrPathTooDeep, map[string]string{
					"depth": strconv.Itoa(p.Len()),
					"max":   strconv.Itoa(limit),
				})
			}
			if strict {
				if _, err := p.ToList(); err != nil {
					return err
				}
			}

			c.Logger.Debug("parsed path %s with %d elements", p, p.Len())
			return c.Fmt.Print(newPathResult(args[0], p))
		},
	}
	parse.Flags().BoolVar(&strict, "strict", false, "fail when any element is invalid")

	cmd.AddCommand(parse)
	return cmd
}
