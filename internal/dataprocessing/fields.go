package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	priceNoise = strings.NewReplacer("$", "", ",", "")
	commas     = strings.NewReplacer(",", "")
	secUnit    = regexp.MustCompile(`(?i)sec`)
	hpUnit     = regexp.MustCompile(`(?i)hp`)
	torqueUnit = regexp.MustCompile(`(?i)nm`)
	speedUnit  = regexp.MustCompile(`(?i)km/h`)
)

// ParsePrice converts a listing price such as "$26,700" or "$12,000-$15,000"
// into a number. Ranges yield the mean of their first two endpoints, with an
// unparseable endpoint counting as zero. Anything unparseable yields 0.
func ParsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	cleaned := strings.TrimSpace(priceNoise.Replace(s))
	if strings.Contains(cleaned, "-") {
		parts := strings.Split(cleaned, "-")
		low := leadingFloat(strings.TrimSpace(parts[0]))
		high := 0.0
		if len(parts) > 1 {
			high = leadingFloat(strings.TrimSpace(parts[1]))
		}
		return (low + high) / 2
	}
	return leadingFloat(cleaned)
}

// ParsePerformance parses a 0-100 km/h time such as "2.5 sec".
func ParsePerformance(s string) float64 {
	return parseUnit(s, secUnit)
}

// ParseHorsepower parses a power figure such as "1,020 hp".
func ParseHorsepower(s string) float64 {
	return parseUnit(s, hpUnit)
}

// ParseTorque parses a torque figure such as "800 Nm".
func ParseTorque(s string) float64 {
	return parseUnit(s, torqueUnit)
}

// ParseSpeed parses a top speed such as "340 km/h".
func ParseSpeed(s string) float64 {
	return parseUnit(s, speedUnit)
}

func parseUnit(s string, unit *regexp.Regexp) float64 {
	if s == "" {
		return 0
	}
	cleaned := unit.ReplaceAllString(s, "")
	return leadingFloat(strings.TrimSpace(commas.Replace(cleaned)))
}

// leadingFloat parses the longest decimal prefix of s, ignoring trailing
// text the way lenient float parsers do ("2.5s" is 2.5, "abc" is 0).
func leadingFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n")
	end := scanFloat(s)
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// scanFloat returns the length of the float literal at the start of s, or 0.
func scanFloat(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > exp {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
