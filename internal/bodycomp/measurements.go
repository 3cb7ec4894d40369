package bodycomp

import "strings"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender normalizes a user supplied gender. ok is false for anything
// other than male/female, in any letter case.
func ParseGender(raw string) (_ Gender, ok bool) {
	switch Gender(strings.ToLower(strings.TrimSpace(raw))) {
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	default:
		return "", false
	}
}

// Measurements are circumferences in centimeters and weight in kilograms.
// A nil field means the value was never supplied.
type Measurements struct {
	HeightCm *float64 `json:"height_cm,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
	WaistCm  *float64 `json:"waist_cm,omitempty"`
	HipCm    *float64 `json:"hip_cm,omitempty"`
	NeckCm   *float64 `json:"neck_cm,omitempty"`
}

func (m *Measurements) IsEmpty() bool {
	return m == nil ||
		m.HeightCm == nil && m.WeightKg == nil && m.WaistCm == nil && m.HipCm == nil && m.NeckCm == nil
}

func (m *Measurements) Clone() *Measurements {
	if m == nil {
		return nil
	}
	return &Measurements{
		HeightCm: clonePtr(m.HeightCm),
		WeightKg: clonePtr(m.WeightKg),
		WaistCm:  clonePtr(m.WaistCm),
		HipCm:    clonePtr(m.HipCm),
		NeckCm:   clonePtr(m.NeckCm),
	}
}

// CalculatedMetrics only ever holds successfully computed, positive values.
type CalculatedMetrics struct {
	BMI     *float64 `json:"bmi,omitempty"`
	WHR     *float64 `json:"whr,omitempty"`
	BFPNavy *float64 `json:"bfp_from_measurements_navy,omitempty"`
}

func (c CalculatedMetrics) IsEmpty() bool {
	return c.BMI == nil && c.WHR == nil && c.BFPNavy == nil
}

func (c CalculatedMetrics) Clone() CalculatedMetrics {
	return CalculatedMetrics{
		BMI:     clonePtr(c.BMI),
		WHR:     clonePtr(c.WHR),
		BFPNavy: clonePtr(c.BFPNavy),
	}
}

// Float returns a pointer to v, handy for building measurements.
func Float(v float64) *float64 {
	return &v
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
