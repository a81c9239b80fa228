// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp reads the flat key=value configuration (plus identical
// command-line flags) described in spec.md §6, and builds the box, filament
// population, motor/crosslinker ensembles and network they describe.
package inp

import (
	"bufio"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"

	"github.com/dinner-group/afines-go/box"
	"github.com/dinner-group/afines-go/simerr"
)

// Config mirrors every key listed in spec.md §6, flattened into one struct;
// Default returns the simulation's defaults (fields it does not set are zero).
type Config struct {
	BndCnd string
	Xrange float64
	Yrange float64

	Dt      float64
	Tinit   float64
	Tfinal  float64
	Nframes int
	Nmsgs   int

	Viscosity   float64
	Temperature float64
	Dir         string
	Myseed      uint64

	Restart       bool
	RestartTime   float64
	RestartStrain float64

	GridFactor       float64
	QuadOffFlag      bool
	QuadUpdatePeriod int
	CheckDupInQuad   bool

	Npolymer                int
	Nmonomer                int
	NmonomerExtra           int
	ExtraBeadProb           float64
	ActinLength             float64
	LinkLength              float64
	PolymerBendingModulus   float64
	LinkStretchingStiffness float64
	FenePct                 float64
	FractureForce           float64
	Rmax                    float64
	Kexv                    float64
	Kgrow                   float64
	Lgrow                   float64
	L0min                   float64
	L0max                   float64
	NlinkMax                int

	AMotorDensity   float64
	AMotorLen       float64
	AMotorStiffness float64
	AMotorMaxExt    float64
	AMotorKon       float64
	AMotorKoff      float64
	AMotorKend      float64
	AMotorV0        float64
	AMotorFStall    float64
	AMotorCutoff    float64
	AMotorDamp      float64

	PMotorDensity   float64
	PMotorLen       float64
	PMotorStiffness float64
	PMotorMaxExt    float64
	PMotorKon       float64
	PMotorKoff      float64
	PMotorKend      float64
	PMotorCutoff    float64
	PMotorDamp      float64

	NBwShear        int
	DStrainFreq     float64
	DStrainPct      float64
	TimeOfDstrain   float64
	TimeOfDstrain2  float64
	DiffStrainFlag  bool
	OscStrainFlag   bool
	StressFlag      bool
	Stress1         float64
	StressRate1     float64
	Stress2         float64
	StressRate2     float64

	CircleFlag           bool
	CircleRadius         float64
	CircleSpringConstant float64

	// RateDistributions optionally declares per-motor-rate parameters as
	// random variables rather than fixed constants, the same
	// declare-then-Init convention the reference stack uses for its own
	// adjustable/random simulation parameters. Keyed by the Config field name
	// the rate came from (e.g. "AMotorKon"); a rate not present here is used
	// as-is. Not populated from the key=value file or CLI flags (spec.md §6
	// has no such keys); callers wire it in programmatically before Build.
	RateDistributions rnd.Variables
}

// Default returns a Config with the defaults spec.md's examples rely on: an
// open box, zero temperature, no motors, no shear.
func Default() *Config {
	return &Config{
		BndCnd:           "OPEN",
		Xrange:           50,
		Yrange:           50,
		Dt:               1e-4,
		Tfinal:           1,
		Nframes:          100,
		Nmsgs:            100,
		Viscosity:        0.02,
		Dir:              ".",
		Myseed:           1,
		GridFactor:       1,
		QuadUpdatePeriod: 1,
		ActinLength:      0.5,
		LinkLength:       0.1,
		Kgrow:            0,
		L0min:            0.02,
		L0max:            0.3,
	}
}

// ParseFile reads a flat `key value` or `key=value` configuration file into
// Config, one assignment per non-blank, non-'#'-comment line.
func ParseFile(path string) (*Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, simerr.New(simerr.IOError, -1, io.Sf("cannot open config file %q: %v", path, err))
	}
	defer fh.Close()

	cfg := Default()
	scanner := bufio.NewScanner(fh)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, err := splitAssignment(line)
		if err != nil {
			return nil, simerr.New(simerr.ConfigError, -1, io.Sf("%s:%d: %v", path, lineNo, err))
		}
		if err := cfg.set(key, val); err != nil {
			return nil, simerr.New(simerr.ConfigError, -1, io.Sf("%s:%d: %v", path, lineNo, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, simerr.New(simerr.IOError, -1, io.Sf("error reading config file %q: %v", path, err))
	}
	return cfg, nil
}

// splitAssignment splits a "key value" or "key=value" line into its parts
func splitAssignment(line string) (key, val string, err error) {
	if idx := strings.IndexByte(line, '='); idx >= 0 {
		return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), nil
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", io.Sf("malformed configuration line %q", line)
	}
	return fields[0], strings.Join(fields[1:], " "), nil
}

// RegisterFlags attaches every spec.md §6 option as a command-line flag on fs
// with the same name, so a value given on the command line overrides the
// configuration file (spec.md §6: "identical command-line flags").
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.BndCnd, "bnd_cnd", c.BndCnd, "boundary condition kind")
	fs.Float64Var(&c.Xrange, "xrange", c.Xrange, "box x extent")
	fs.Float64Var(&c.Yrange, "yrange", c.Yrange, "box y extent")
	fs.Float64Var(&c.Dt, "dt", c.Dt, "time step")
	fs.Float64Var(&c.Tinit, "tinit", c.Tinit, "initial time")
	fs.Float64Var(&c.Tfinal, "tfinal", c.Tfinal, "final time")
	fs.IntVar(&c.Nframes, "nframes", c.Nframes, "number of output frames")
	fs.IntVar(&c.Nmsgs, "nmsgs", c.Nmsgs, "number of progress messages")
	fs.Float64Var(&c.Viscosity, "viscosity", c.Viscosity, "fluid viscosity")
	fs.Float64Var(&c.Temperature, "temperature", c.Temperature, "kB*T")
	fs.StringVar(&c.Dir, "dir", c.Dir, "output directory")
	fs.Uint64Var(&c.Myseed, "myseed", c.Myseed, "RNG seed")
	fs.BoolVar(&c.Restart, "restart", c.Restart, "restart from a previous run's output")
	fs.Float64Var(&c.RestartTime, "restart_time", c.RestartTime, "simulation time to restart from")
	fs.Float64Var(&c.RestartStrain, "restart_strain", c.RestartStrain, "Lees-Edwards strain to restart from")
	fs.Float64Var(&c.GridFactor, "grid_factor", c.GridFactor, "quadrant cells per unit length")
	fs.BoolVar(&c.QuadOffFlag, "quad_off_flag", c.QuadOffFlag, "disable the quadrant spatial index")
	fs.IntVar(&c.QuadUpdatePeriod, "quad_update_period", c.QuadUpdatePeriod, "steps between quadrant rebuilds")
	fs.BoolVar(&c.CheckDupInQuad, "check_dup_in_quad", c.CheckDupInQuad, "panic on duplicate quadrant insert")
	fs.IntVar(&c.Npolymer, "npolymer", c.Npolymer, "number of filaments")
	fs.IntVar(&c.Nmonomer, "nmonomer", c.Nmonomer, "beads per filament")
	fs.IntVar(&c.NmonomerExtra, "nmonomer_extra", c.NmonomerExtra, "extra beads allowed per filament")
	fs.Float64Var(&c.ExtraBeadProb, "extra_bead_prob", c.ExtraBeadProb, "probability of an extra bead at init")
	fs.Float64Var(&c.ActinLength, "actin_length", c.ActinLength, "bead diameter")
	fs.Float64Var(&c.LinkLength, "link_length", c.LinkLength, "spring rest length")
	fs.Float64Var(&c.PolymerBendingModulus, "polymer_bending_modulus", c.PolymerBendingModulus, "Kb")
	fs.Float64Var(&c.LinkStretchingStiffness, "link_stretching_stiffness", c.LinkStretchingStiffness, "Kl")
	fs.Float64Var(&c.FenePct, "fene_pct", c.FenePct, "FENE max extension as a fraction of l0")
	fs.Float64Var(&c.FractureForce, "fracture_force", c.FractureForce, "spring force magnitude that fractures")
	fs.Float64Var(&c.Rmax, "rmax", c.Rmax, "excluded-volume cutoff radius")
	fs.Float64Var(&c.Kexv, "kexv", c.Kexv, "excluded-volume amplitude")
	fs.Float64Var(&c.Kgrow, "kgrow", c.Kgrow, "growth attempt rate")
	fs.Float64Var(&c.Lgrow, "lgrow", c.Lgrow, "rest-length increment per growth event")
	fs.Float64Var(&c.L0min, "l0min", c.L0min, "minimum spring rest length")
	fs.Float64Var(&c.L0max, "l0max", c.L0max, "maximum spring rest length before inserting a bead")
	fs.IntVar(&c.NlinkMax, "nlink_max", c.NlinkMax, "maximum springs per filament")
	fs.Float64Var(&c.AMotorDensity, "a_motor_density", c.AMotorDensity, "active motors per unit area")
	fs.Float64Var(&c.AMotorLen, "a_motor_len", c.AMotorLen, "active motor rest length")
	fs.Float64Var(&c.AMotorStiffness, "a_motor_stiffness", c.AMotorStiffness, "active motor stiffness")
	fs.Float64Var(&c.AMotorMaxExt, "a_motor_max_ext", c.AMotorMaxExt, "active motor max extension")
	fs.Float64Var(&c.AMotorKon, "a_motor_kon", c.AMotorKon, "active motor attach rate")
	fs.Float64Var(&c.AMotorKoff, "a_motor_koff", c.AMotorKoff, "active motor interior detach rate")
	fs.Float64Var(&c.AMotorKend, "a_motor_kend", c.AMotorKend, "active motor end detach rate")
	fs.Float64Var(&c.AMotorV0, "a_motor_v0", c.AMotorV0, "active motor unloaded walking speed")
	fs.Float64Var(&c.AMotorFStall, "a_motor_stall_force", c.AMotorFStall, "active motor stall force")
	fs.Float64Var(&c.AMotorCutoff, "a_motor_cutoff", c.AMotorCutoff, "active motor attach distance")
	fs.Float64Var(&c.AMotorDamp, "a_motor_damp", c.AMotorDamp, "active motor free-head drag")
	fs.Float64Var(&c.PMotorDensity, "p_motor_density", c.PMotorDensity, "crosslinkers per unit area")
	fs.Float64Var(&c.PMotorLen, "p_motor_len", c.PMotorLen, "crosslinker rest length")
	fs.Float64Var(&c.PMotorStiffness, "p_motor_stiffness", c.PMotorStiffness, "crosslinker stiffness")
	fs.Float64Var(&c.PMotorMaxExt, "p_motor_max_ext", c.PMotorMaxExt, "crosslinker max extension")
	fs.Float64Var(&c.PMotorKon, "p_motor_kon", c.PMotorKon, "crosslinker attach rate")
	fs.Float64Var(&c.PMotorKoff, "p_motor_koff", c.PMotorKoff, "crosslinker interior detach rate")
	fs.Float64Var(&c.PMotorKend, "p_motor_kend", c.PMotorKend, "crosslinker end detach rate")
	fs.Float64Var(&c.PMotorCutoff, "p_motor_cutoff", c.PMotorCutoff, "crosslinker attach distance")
	fs.Float64Var(&c.PMotorDamp, "p_motor_damp", c.PMotorDamp, "crosslinker free-head drag")
	fs.IntVar(&c.NBwShear, "n_bw_shear", c.NBwShear, "steps between shear applications")
	fs.Float64Var(&c.DStrainFreq, "d_strain_freq", c.DStrainFreq, "period of the oscillatory strain protocol")
	fs.Float64Var(&c.DStrainPct, "d_strain_pct", c.DStrainPct, "strain increment per application")
	fs.Float64Var(&c.TimeOfDstrain, "time_of_dstrain", c.TimeOfDstrain, "time the step-strain protocol fires")
	fs.Float64Var(&c.TimeOfDstrain2, "time_of_dstrain2", c.TimeOfDstrain2, "time a second step-strain fires")
	fs.BoolVar(&c.DiffStrainFlag, "diff_strain_flag", c.DiffStrainFlag, "enable the one-shot step-strain protocol")
	fs.BoolVar(&c.OscStrainFlag, "osc_strain_flag", c.OscStrainFlag, "enable the oscillatory strain protocol")
	fs.BoolVar(&c.StressFlag, "stress_flag", c.StressFlag, "enable the stress-controlled strain protocol")
	fs.Float64Var(&c.Stress1, "stress1", c.Stress1, "first stage target stress")
	fs.Float64Var(&c.StressRate1, "stress_rate1", c.StressRate1, "first stage stress ramp rate")
	fs.Float64Var(&c.Stress2, "stress2", c.Stress2, "second stage target stress")
	fs.Float64Var(&c.StressRate2, "stress_rate2", c.StressRate2, "second stage stress ramp rate")
	fs.BoolVar(&c.CircleFlag, "circle_flag", c.CircleFlag, "confine the network inside a circular wall")
	fs.Float64Var(&c.CircleRadius, "circle_radius", c.CircleRadius, "circular wall radius")
	fs.Float64Var(&c.CircleSpringConstant, "circle_spring_constant", c.CircleSpringConstant, "circular wall stiffness")
}

// BoundaryKind parses BndCnd into a box.Kind
func (c *Config) BoundaryKind() (box.Kind, error) {
	return box.ParseKind(c.BndCnd)
}

// set assigns one key=value pair by field name; unrecognized keys are a
// ConfigError (spec.md §7).
func (c *Config) set(key, val string) error {
	switch key {
	case "bnd_cnd":
		c.BndCnd = strings.ToUpper(val)
	case "xrange":
		return c.setFloat(&c.Xrange, val)
	case "yrange":
		return c.setFloat(&c.Yrange, val)
	case "dt":
		return c.setFloat(&c.Dt, val)
	case "tinit":
		return c.setFloat(&c.Tinit, val)
	case "tfinal":
		return c.setFloat(&c.Tfinal, val)
	case "nframes":
		return c.setInt(&c.Nframes, val)
	case "nmsgs":
		return c.setInt(&c.Nmsgs, val)
	case "viscosity":
		return c.setFloat(&c.Viscosity, val)
	case "temperature":
		return c.setFloat(&c.Temperature, val)
	case "dir":
		c.Dir = val
	case "myseed":
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return io.Sf("myseed: %v", err)
		}
		c.Myseed = n
	case "restart":
		return c.setBool(&c.Restart, val)
	case "restart_time":
		return c.setFloat(&c.RestartTime, val)
	case "restart_strain":
		return c.setFloat(&c.RestartStrain, val)
	case "grid_factor":
		return c.setFloat(&c.GridFactor, val)
	case "quad_off_flag":
		return c.setBool(&c.QuadOffFlag, val)
	case "quad_update_period":
		return c.setInt(&c.QuadUpdatePeriod, val)
	case "check_dup_in_quad":
		return c.setBool(&c.CheckDupInQuad, val)
	case "npolymer":
		return c.setInt(&c.Npolymer, val)
	case "nmonomer":
		return c.setInt(&c.Nmonomer, val)
	case "nmonomer_extra":
		return c.setInt(&c.NmonomerExtra, val)
	case "extra_bead_prob":
		return c.setFloat(&c.ExtraBeadProb, val)
	case "actin_length":
		return c.setFloat(&c.ActinLength, val)
	case "link_length":
		return c.setFloat(&c.LinkLength, val)
	case "polymer_bending_modulus":
		return c.setFloat(&c.PolymerBendingModulus, val)
	case "link_stretching_stiffness":
		return c.setFloat(&c.LinkStretchingStiffness, val)
	case "fene_pct":
		return c.setFloat(&c.FenePct, val)
	case "fracture_force":
		return c.setFloat(&c.FractureForce, val)
	case "rmax":
		return c.setFloat(&c.Rmax, val)
	case "kexv":
		return c.setFloat(&c.Kexv, val)
	case "kgrow":
		return c.setFloat(&c.Kgrow, val)
	case "lgrow":
		return c.setFloat(&c.Lgrow, val)
	case "l0min":
		return c.setFloat(&c.L0min, val)
	case "l0max":
		return c.setFloat(&c.L0max, val)
	case "nlink_max":
		return c.setInt(&c.NlinkMax, val)
	case "a_motor_density":
		return c.setFloat(&c.AMotorDensity, val)
	case "a_motor_len":
		return c.setFloat(&c.AMotorLen, val)
	case "a_motor_stiffness":
		return c.setFloat(&c.AMotorStiffness, val)
	case "a_motor_max_ext":
		return c.setFloat(&c.AMotorMaxExt, val)
	case "a_motor_kon":
		return c.setFloat(&c.AMotorKon, val)
	case "a_motor_koff":
		return c.setFloat(&c.AMotorKoff, val)
	case "a_motor_kend":
		return c.setFloat(&c.AMotorKend, val)
	case "a_motor_v0":
		return c.setFloat(&c.AMotorV0, val)
	case "a_motor_stall_force":
		return c.setFloat(&c.AMotorFStall, val)
	case "a_motor_cutoff":
		return c.setFloat(&c.AMotorCutoff, val)
	case "a_motor_damp":
		return c.setFloat(&c.AMotorDamp, val)
	case "p_motor_density":
		return c.setFloat(&c.PMotorDensity, val)
	case "p_motor_len":
		return c.setFloat(&c.PMotorLen, val)
	case "p_motor_stiffness":
		return c.setFloat(&c.PMotorStiffness, val)
	case "p_motor_max_ext":
		return c.setFloat(&c.PMotorMaxExt, val)
	case "p_motor_kon":
		return c.setFloat(&c.PMotorKon, val)
	case "p_motor_koff":
		return c.setFloat(&c.PMotorKoff, val)
	case "p_motor_kend":
		return c.setFloat(&c.PMotorKend, val)
	case "p_motor_cutoff":
		return c.setFloat(&c.PMotorCutoff, val)
	case "p_motor_damp":
		return c.setFloat(&c.PMotorDamp, val)
	case "n_bw_shear":
		return c.setInt(&c.NBwShear, val)
	case "d_strain_freq":
		return c.setFloat(&c.DStrainFreq, val)
	case "d_strain_pct":
		return c.setFloat(&c.DStrainPct, val)
	case "time_of_dstrain":
		return c.setFloat(&c.TimeOfDstrain, val)
	case "time_of_dstrain2":
		return c.setFloat(&c.TimeOfDstrain2, val)
	case "diff_strain_flag":
		return c.setBool(&c.DiffStrainFlag, val)
	case "osc_strain_flag":
		return c.setBool(&c.OscStrainFlag, val)
	case "stress_flag":
		return c.setBool(&c.StressFlag, val)
	case "stress1":
		return c.setFloat(&c.Stress1, val)
	case "stress_rate1":
		return c.setFloat(&c.StressRate1, val)
	case "stress2":
		return c.setFloat(&c.Stress2, val)
	case "stress_rate2":
		return c.setFloat(&c.StressRate2, val)
	case "circle_flag":
		return c.setBool(&c.CircleFlag, val)
	case "circle_radius":
		return c.setFloat(&c.CircleRadius, val)
	case "circle_spring_constant":
		return c.setFloat(&c.CircleSpringConstant, val)
	default:
		return io.Sf("unknown configuration option %q", key)
	}
	return nil
}

func (c *Config) setFloat(dst *float64, val string) error {
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return io.Sf("expected a number, got %q: %v", val, err)
	}
	*dst = v
	return nil
}

func (c *Config) setInt(dst *int, val string) error {
	v, err := strconv.Atoi(val)
	if err != nil {
		return io.Sf("expected an integer, got %q: %v", val, err)
	}
	*dst = v
	return nil
}

func (c *Config) setBool(dst *bool, val string) error {
	v, err := strconv.ParseBool(val)
	if err != nil {
		return io.Sf("expected a boolean, got %q: %v", val, err)
	}
	*dst = v
	return nil
}
