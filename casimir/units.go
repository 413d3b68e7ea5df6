// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package casimir

import "math"

// hbarc is ħc in joule-metres, and kB is the Boltzmann constant in
// joule/kelvin (2019 SI exact value). Ported from the HBARC/KB constants
// referenced by libcasimir.c's SI<->scaled conversion routines.
const (
	hbarc = 3.1615267734966e-26
	kB    = 1.380649e-23
)

// FreeEnergySIToScaled converts a free energy in joules to the
// dimensionless scaled units used internally, F_scaled = F_SI·ScriptL/ħc.
// scriptL is ℒ = R+L in metres. Ported from caps' casimir_F_SI_to_scaled
// (libcasimir.c).
func FreeEnergySIToScaled(FSI, scriptL float64) float64 {
	return scriptL / hbarc * FSI
}

// FreeEnergyScaledToSI is the inverse of FreeEnergySIToScaled. Ported from
// caps' casimir_F_scaled_to_SI (libcasimir.c).
func FreeEnergyScaledToSI(F, scriptL float64) float64 {
	return hbarc / scriptL * F
}

// TemperatureSIToScaled converts a temperature in kelvin to the
// dimensionless scaled units used internally,
// T_scaled = 2π·k_B·ScriptL/ħc·T_SI. Ported from caps'
// casimir_T_SI_to_scaled (libcasimir.c).
func TemperatureSIToScaled(TSI, scriptL float64) float64 {
	return 2 * math.Pi * kB * scriptL / hbarc * TSI
}

// TemperatureScaledToSI is the inverse of TemperatureSIToScaled. Ported
// from caps' casimir_T_scaled_to_SI (libcasimir.c).
func TemperatureScaledToSI(T, scriptL float64) float64 {
	return hbarc / (2 * math.Pi * kB * scriptL) * T
}
