package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gofe/elements"
	"github.com/notargets/gofe/fe"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title     string              `yaml:"Title"`
	Dimension int                 `yaml:"Dimension"`
	Tolerance float64             `yaml:"Tolerance"`
	Elements  []ElementParameters `yaml:"Elements"`
}

// ElementParameters describe one element: a single family member, or a composite when it lists
// more than one base or a multiplicity above one.
type ElementParameters struct {
	Name    string           `yaml:"Name"`
	Packing string           `yaml:"Packing"`
	Bases   []BaseParameters `yaml:"Bases"`
}

type BaseParameters struct {
	Element      string `yaml:"Element"`
	Multiplicity int    `yaml:"Multiplicity"`
}

const DefaultTolerance = 1.e-10

func (ip *InputParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if ip.Tolerance == 0 {
		ip.Tolerance = DefaultTolerance
	}
	for i := range ip.Elements {
		for b := range ip.Elements[i].Bases {
			if ip.Elements[i].Bases[b].Multiplicity == 0 {
				ip.Elements[i].Bases[b].Multiplicity = 1
			}
		}
	}
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= Dimension\n", ip.Dimension)
	fmt.Printf("%8.2e\t\t= Tolerance\n", ip.Tolerance)
	for _, ep := range ip.Elements {
		fmt.Printf("Elements[%s] = %s\n", ep.Name, ep.String())
	}
}

func (ep ElementParameters) String() string {
	parts := make([]string, len(ep.Bases))
	for b, bp := range ep.Bases {
		parts[b] = bp.Element
		if bp.Multiplicity > 1 {
			parts[b] += fmt.Sprintf("^%d", bp.Multiplicity)
		}
	}
	packing := ep.Packing
	if packing == "" {
		packing = fe.PackInterleaved.String()
	}
	return fmt.Sprintf("[%s] %s", strings.Join(parts, "-"), packing)
}

// Build constructs the described element in dim dimensions.
func (ep ElementParameters) Build(dim int) (el fe.Element, err error) {
	if len(ep.Bases) == 0 {
		err = fmt.Errorf("%w: element %q lists no bases", fe.ErrInvalidElementData, ep.Name)
		return
	}
	if len(ep.Bases) == 1 && ep.Bases[0].Multiplicity <= 1 {
		return elements.New(ep.Bases[0].Element, dim)
	}
	var packing fe.Packing
	if packing, err = fe.ParsePacking(ep.Packing); err != nil {
		return
	}
	specs := make([]fe.BaseSpec, len(ep.Bases))
	for b, bp := range ep.Bases {
		if specs[b].Element, err = elements.New(bp.Element, dim); err != nil {
			return nil, fmt.Errorf("element %q base %d: %w", ep.Name, b, err)
		}
		specs[b].Multiplicity = max(bp.Multiplicity, 1)
	}
	var sys *fe.FESystem
	if sys, err = fe.NewFESystem(packing, specs...); err != nil {
		return nil, err
	}
	return sys, nil
}

// BuildAll constructs every element of the input file.
func (ip *InputParameters) BuildAll() (els []fe.Element, err error) {
	els = make([]fe.Element, len(ip.Elements))
	for i, ep := range ip.Elements {
		if els[i], err = ep.Build(ip.Dimension); err != nil {
			return nil, err
		}
	}
	return
}
