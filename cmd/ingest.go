package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/policy"
	"github.com/cursorassist/cursorassist/assist/tracefmt"
)

var (
	ingestOutPath    string
	ingestEmitConfig bool
	ingestProfileID  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <trace>",
	Short: "Estimate a MotorProfile from a recorded trace, optionally emitting the mapped AssistiveConfig",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestOutPath, "out", "", "Write the result to this path (stdout if empty)")
	ingestCmd.Flags().BoolVar(&ingestEmitConfig, "emit-config", false, "Also map the estimated profile through the policy and emit the AssistiveConfig")
	ingestCmd.Flags().StringVar(&ingestProfileID, "profile-id", "ingested", "ProfileID to stamp on the estimated MotorProfile")
}

func runIngest(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("ingest: opening trace: %w", err)
	}
	defer f.Close()

	reader, err := tracefmt.NewReader(f)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	profile, err := estimateProfile(reader, ingestProfileID)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"profile_id":   profile.ProfileID,
		"amplitude":    profile.TremorAmplitudeVpx,
		"frequency_hz": profile.TremorFrequencyHz,
	}).Info("profile estimated")

	out := io.Writer(os.Stdout)
	if ingestOutPath != "" {
		outFile, err := os.Create(ingestOutPath)
		if err != nil {
			return fmt.Errorf("ingest: creating --out: %w", err)
		}
		defer outFile.Close()
		out = outFile
	}

	if !ingestEmitConfig {
		return json.NewEncoder(out).Encode(profile)
	}

	cfg := policy.Map(profile)
	return json.NewEncoder(out).Encode(cfg)
}

// estimateProfile derives a coarse MotorProfile from a trace's per-tick
// deltas: amplitude from the RMS delta magnitude, frequency from the
// zero-crossing rate of dx over the sample-rate header field. This is a
// calibration heuristic, not the tremor analyzer spec §1 excludes; it only
// needs to be good enough to drive the policy mapper from recorded motion.
func estimateProfile(reader *tracefmt.Reader, profileID string) (assist.MotorProfile, error) {
	var components []float64
	var count int
	var crossings int
	haveSign := false
	var prevSign bool

	for {
		tick, err := reader.Next()
		if err != nil {
			break
		}
		components = append(components, float64(tick.DX), float64(tick.DY))
		count++

		sign := tick.DX >= 0
		if haveSign && sign != prevSign {
			crossings++
		}
		prevSign = sign
		haveSign = true
	}
	if count == 0 {
		return assist.MotorProfile{}, fmt.Errorf("trace contains no tick records")
	}

	// floats.Norm(components, 2) is the Euclidean norm sqrt(sum(x_i^2)) over
	// every dx/dy component in the trace; dividing by sqrt(2*count) turns
	// that into the RMS per-tick delta magnitude.
	rms := floats.Norm(components, 2) / math.Sqrt(2*float64(count))
	amplitude := float32(rms)

	sampleRate := float32(reader.Header.SampleRateHz)
	if sampleRate <= 0 {
		sampleRate = assist.DefaultSampleRateHz
	}
	frequency := float32(crossings) * sampleRate / (2 * float32(count))

	return assist.MotorProfile{
		ProfileID:          profileID,
		TremorAmplitudeVpx: amplitude,
		TremorFrequencyHz:  frequency,
		PathEfficiency:     0.7,
		OvershootRate:      0,
	}, nil
}
