package bodycomp

import "math"

const (
	navyMaleWaistNeckFactor = 86.010
	navyMaleHeightFactor    = 70.041
	navyMaleConstant        = 36.76

	navyFemaleCircumferenceFactor = 163.205
	navyFemaleHeightFactor        = 97.684
	navyFemaleConstant            = 78.387
)

// Round2 rounds v to two decimals, halves to even.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}

// ComputeBMI returns weight / height(m)^2, or nil unless both inputs are positive.
func ComputeBMI(weightKg, heightCm *float64) *float64 {
	if !positive(weightKg) || !positive(heightCm) {
		return nil
	}
	heightM := *heightCm / 100
	bmi := Round2(*weightKg / (heightM * heightM))
	return &bmi
}

// ComputeWHR returns the waist to hip ratio, or nil unless both inputs are positive.
func ComputeWHR(waistCm, hipCm *float64) *float64 {
	if !positive(waistCm) || !positive(hipCm) {
		return nil
	}
	whr := Round2(*waistCm / *hipCm)
	return &whr
}

// ComputeBodyFatNavy estimates body fat percentage with the U.S. Navy
// circumference method. hipCm is only consulted for females.
// Any unusable input yields nil; log10 is never evaluated on a non-positive argument.
func ComputeBodyFatNavy(gender *string, heightCm, neckCm, waistCm, hipCm *float64) *float64 {
	if gender == nil || heightCm == nil || neckCm == nil || waistCm == nil {
		return nil
	}
	if !positive(heightCm) || !positive(neckCm) || !positive(waistCm) {
		return nil
	}

	g, ok := ParseGender(*gender)
	if !ok {
		return nil
	}

	height, neck, waist := *heightCm, *neckCm, *waistCm

	var bfp float64
	switch g {
	case GenderMale:
		if waist <= neck {
			return nil
		}
		bfp = navyMaleWaistNeckFactor*math.Log10(waist-neck) -
			navyMaleHeightFactor*math.Log10(height) +
			navyMaleConstant
	case GenderFemale:
		if !positive(hipCm) {
			return nil
		}
		hip := *hipCm
		if waist+hip <= neck {
			return nil
		}
		bfp = navyFemaleCircumferenceFactor*math.Log10(waist+hip-neck) -
			navyFemaleHeightFactor*math.Log10(height) -
			navyFemaleConstant
	}

	bfp = Round2(bfp)
	if bfp <= 0 || math.IsNaN(bfp) || math.IsInf(bfp, 0) {
		return nil
	}
	return &bfp
}

// ComputeAllMetrics computes every metric the measurements allow.
// Without a gender no body fat estimate is attempted.
func ComputeAllMetrics(m *Measurements, gender *string) CalculatedMetrics {
	var metrics CalculatedMetrics
	if m.IsEmpty() {
		return metrics
	}

	metrics.BMI = ComputeBMI(m.WeightKg, m.HeightCm)
	metrics.WHR = ComputeWHR(m.WaistCm, m.HipCm)

	if gender != nil {
		var hip *float64
		if g, ok := ParseGender(*gender); ok && g == GenderFemale {
			hip = m.HipCm
		}
		metrics.BFPNavy = ComputeBodyFatNavy(gender, m.HeightCm, m.NeckCm, m.WaistCm, hip)
	}

	return metrics
}
