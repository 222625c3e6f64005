package dataprocessing

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// Fingerprint digests every field the reducers read, so two sets with the
// same content and order share a digest regardless of slice identity.
func Fingerprint(cars []domain.Car) string {
	d := xxhash.New()
	var buf [8]byte

	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		_, _ = d.Write(buf[:])
		_, _ = d.WriteString(s)
	}
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}

	binary.LittleEndian.PutUint64(buf[:], uint64(len(cars)))
	_, _ = d.Write(buf[:])
	for i := range cars {
		c := &cars[i]
		writeString(c.CompanyName)
		writeString(c.ModelName)
		writeString(c.FuelType)
		writeString(c.EngineType)
		writeFloat(c.Price)
		writeFloat(c.Performance)
		writeFloat(c.HorsePower)
		writeFloat(c.Torque)
		writeFloat(c.TotalSpeed)
	}
	return strconv.FormatUint(d.Sum64(), 16) + "-" + strconv.Itoa(len(cars))
}
