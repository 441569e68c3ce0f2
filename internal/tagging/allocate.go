// Package tagging assigns ISA-style equipment tags and resolves collisions
// within a facility's tag space.
package tagging

import "strings"

// isaTagPrefix maps component class names to ISA-standard tag prefixes.
// Includes both legacy names and official DEXPI 2.0 component class names so
// tags resolve correctly regardless of which name research produced.
var isaTagPrefix = map[string]string{
	// Rotating equipment
	"Pump": "P", "CentrifugalPump": "P", "Compressor": "C", "CentrifugalCompressor": "C",
	"Turbine": "T", "SteamTurbine": "ST", "GasTurbine": "GT", "Fan": "FN", "Blower": "BL",
	"Agitator": "AG", "Centrifuge": "CF", "Conveyor": "CNV", "Mixer": "MX",

	// Static equipment
	"PressureVessel": "V", "Vessel": "V", "Tank": "TK", "StorageTank": "TK",
	"Column": "COL", "ProcessColumn": "COL", "Reactor": "R", "Drum": "D",
	"Separator": "SEP", "Filter": "FL", "Scrubber": "SCR", "Silo": "SI",
	"Thickener": "TH", "Clarifier": "CL", "Autoclave": "AC",

	// Heat transfer
	"HeatExchanger": "E", "ShellTubeHeatExchanger": "E", "AirCooledHeatExchanger": "E",
	"Boiler": "BLR", "Furnace": "H", "Heater": "H", "Condenser": "CND", "Cooler": "CLR",
	"Evaporator": "EV", "CoolingTower": "CT", "Dryer": "DR", "Deaerator": "DA", "Kiln": "KN",

	// Electrical
	"Generator": "G", "ElectricGenerator": "G", "Motor": "M", "Transformer": "XF",
	"Switchgear": "SWG", "CircuitBreaker": "CB", "UPS": "UPS", "VFD": "VFD",
	"Electrolyzer": "EL",

	// Piping
	"ControlValve": "CV", "ShutoffValve": "XV", "SafetyValve": "PSV", "GateValve": "GV",
	"Pipe": "PIPE", "FlareStack": "FLR", "Strainer": "STR", "Cyclone": "CY",

	// Instrumentation
	"Transmitter": "TT", "Analyzer": "AT", "FlowMeter": "FE", "GasAnalyzer": "AT",
	"LevelIndicator": "LI",
}

// PrefixFor returns the ISA tag prefix for a component class, falling back to
// the first two letters of the class name uppercased.
func PrefixFor(componentClass string) string {
	if prefix, ok := isaTagPrefix[componentClass]; ok {
		return prefix
	}
	fallback := componentClass
	if len(fallback) > 2 {
		fallback = fallback[:2]
	}
	return strings.ToUpper(fallback)
}

// Allocate resolves a base tag against a set of already-known tags. If the
// base tag is free it is returned unchanged; otherwise suffixes A through Z
// are probed in order and the first free variant is returned. When all 26
// suffixes are taken, ErrTagSpaceExhausted is returned.
//
// The known set is an explicit parameter (snapshot or live query result),
// never ambient state, so allocation stays testable in isolation.
func Allocate(baseTag string, knownTags map[string]bool) (string, error) {
	if !knownTags[baseTag] {
		return baseTag, nil
	}
	for c := 'A'; c <= 'Z'; c++ {
		candidate := baseTag + string(c)
		if !knownTags[candidate] {
			return candidate, nil
		}
	}
	return "", ErrTagSpaceExhausted
}
