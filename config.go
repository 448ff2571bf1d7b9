package unitscaling

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/EIFY/unit-scaling/hyperparams"
)

// Config is the description of a model's parameters and of how they should be scaled, as it is
// stored on file. It exists so that learning-rate tables can be produced without having to build
// the model itself.
type Config struct {
	// Optimizer is the name of the optimizer family, as registered with RegisterScaleFunc: "sgd"
	// or "adam", provided that "scalefuncs" is imported.
	Optimizer string `json:"optimizer"`

	// ReadoutConstraint is required if Optimizer is "sgd"; there is intentionally no default.
	ReadoutConstraint ReadoutConstraint `json:"readout_constraint,omitempty"`

	// DepthLaw is the name of the depth law, as registered with RegisterDepthLaw. If empty, the
	// default depth law is used.
	DepthLaw      string  `json:"depth_law,omitempty"`
	DepthExponent float64 `json:"depth_exponent,omitempty"`

	LR                float64     `json:"lr"`
	WeightDecay       float64     `json:"weight_decay"`
	Decay             DecayPolicy `json:"decay,omitempty"`
	AllowUnrecognized bool        `json:"allow_unrecognized,omitempty"`

	// Schedule is the factor applied to every learning rate over the course of training, in the
	// form accepted by hyperparams.Parse. If empty, the learning rates are constant.
	Schedule string `json:"schedule,omitempty"`

	Params []ParamConfig `json:"params"`
}

// ParamConfig is the on-file form of a Param.
type ParamConfig struct {
	Name    string            `json:"name"`
	Role    Role              `json:"role,omitempty"`
	Shape   []int             `json:"shape"`
	Depth   int               `json:"depth,omitempty"`
	Readout ReadoutConstraint `json:"readout,omitempty"`
}

// Param converts the ParamConfig into a Param. For Output parameters, an empty readout constraint
// is left empty, and will be reported by BuildGroups.
func (pc ParamConfig) Param() Param {
	p := NewParam(pc.Name, pc.Role, pc.Shape...).AtDepth(pc.Depth)
	if pc.Role == Output {
		p = p.WithReadout(pc.Readout)
	}

	return p
}

// ConfigOf returns the ParamConfig describing p.
func ConfigOf(p Param) ParamConfig {
	return ParamConfig{
		Name:    p.name,
		Role:    p.role,
		Shape:   p.Shape(),
		Depth:   p.depth,
		Readout: p.readout,
	}
}

// Args resolves the Config into the arguments of BuildGroups.
func (c *Config) Args() ([]Param, GroupArgs, error) {
	var law DepthLaw
	if c.DepthLaw != "" {
		var err error
		if law, err = NewDepthLaw(c.DepthLaw, c.DepthExponent); err != nil {
			return nil, GroupArgs{}, err
		}
	}

	fn, err := NewScaleFunc(c.Optimizer, c.ReadoutConstraint, law)
	if err != nil {
		return nil, GroupArgs{}, err
	}

	params := make([]Param, len(c.Params))
	for i := range c.Params {
		params[i] = c.Params[i].Param()
	}

	args := GroupArgs{
		Scale:             fn,
		LR:                c.LR,
		WeightDecay:       c.WeightDecay,
		Decay:             c.Decay,
		AllowUnrecognized: c.AllowUnrecognized,
	}

	return params, args, nil
}

// LRSchedule returns the Config's Schedule.
func (c *Config) LRSchedule() (hyperparams.HyperParameter, error) {
	hp, err := hyperparams.Parse(c.Schedule)
	if err != nil {
		return nil, errors.Wrap(err, "Bad learning rate schedule")
	}

	return hp, nil
}

// Build is shorthand for resolving the Config with Args and calling BuildGroups.
func (c *Config) Build() ([]Group, error) {
	params, args, err := c.Args()
	if err != nil {
		return nil, err
	}

	return BuildGroups(params, args)
}

// Save encodes the Config as JSON to the file at path, creating its directory (with permissions
// 0700) if necessary.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrapf(err, "Failed to create directory for %q", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q", path)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "\t")
	if err = enc.Encode(c); err != nil {
		return errors.Wrapf(err, "Failed to encode JSON to file %q", path)
	}

	return nil
}

// LoadConfig decodes a Config from the JSON file at path. Unknown fields are rejected, so that a
// misspelled setting is not silently ignored.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open file %q", path)
	}

	defer f.Close()

	c := new(Config)

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err = dec.Decode(c); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode JSON from file %q", path)
	}

	return c, nil
}
