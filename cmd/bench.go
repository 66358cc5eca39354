package cmd

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/engine"
	"github.com/cursorassist/cursorassist/assist/internal/testutil"
	"github.com/cursorassist/cursorassist/assist/policy"
	"github.com/cursorassist/cursorassist/assist/tracefmt"
	"github.com/cursorassist/cursorassist/assist/transform"
)

var (
	benchProfilePath string
	benchAssistPath  string
	benchTrials      int
	benchSeedHex     string
	benchOutputPath  string
)

// layoutFile is the positional layout argument's on-disk shape: the target
// list the Magnetism stage is benchmarked against.
type layoutFile struct {
	Targets []assist.TargetInfo `yaml:"targets"`
}

var benchCmd = &cobra.Command{
	Use:   "bench <layout-file>",
	Short: "Replay a deterministic synthetic input stream against a layout and report the determinism hash",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchProfilePath, "profile", "", "MotorProfile YAML file (mapped through the policy to an AssistiveConfig)")
	benchCmd.Flags().StringVar(&benchAssistPath, "assist", "", "AssistiveConfig JSON file, overrides --profile when set")
	benchCmd.Flags().IntVar(&benchTrials, "trials", 1, "Number of independent replay trials to run")
	benchCmd.Flags().StringVar(&benchSeedHex, "seed", "2a", "Hex-encoded xorshift32 seed for the synthetic input stream")
	benchCmd.Flags().StringVar(&benchOutputPath, "output", "", "Write the per-trial trace to this path (stdout if empty)")
}

func runBench(cmd *cobra.Command, args []string) error {
	layoutPath := args[0]
	layoutBytes, err := os.ReadFile(layoutPath)
	if err != nil {
		return fmt.Errorf("bench: reading layout file: %w", err)
	}
	var layout layoutFile
	if err := yaml.Unmarshal(layoutBytes, &layout); err != nil {
		return fmt.Errorf("bench: parsing layout file: %w", err)
	}

	cfg, profile, err := resolveBenchConfig()
	if err != nil {
		return err
	}

	seed, err := parseHexSeed(benchSeedHex)
	if err != nil {
		return fmt.Errorf("bench: parsing --seed: %w", err)
	}

	out := os.Stdout
	if benchOutputPath != "" {
		f, err := os.Create(benchOutputPath)
		if err != nil {
			return fmt.Errorf("bench: creating --output: %w", err)
		}
		defer f.Close()
		out = f
	}

	for trial := 0; trial < benchTrials; trial++ {
		trialSeed := seed + uint32(trial)
		events := testutil.GenerateDeltas(trialSeed, 300, -5, 5)
		result := engine.Replay(transform.CanonicalStages(), events, cfg, profile, layout.Targets)

		logrus.WithFields(logrus.Fields{
			"trial": trial,
			"steps": result.StepCount,
			"hash":  fmt.Sprintf("%016x", result.FinalHash),
		}).Info("bench trial complete")

		writer, err := tracefmt.NewWriter(out, tracefmt.Header{
			SampleRateHz: assist.DefaultSampleRateHz,
			RunID:        fmt.Sprintf("bench-%d-%d", trialSeed, time.Now().UnixNano()),
			SourceApp:    "cursorassist-bench",
		})
		if err != nil {
			return fmt.Errorf("bench: writing trace header: %w", err)
		}
		if err := writer.WriteTick(tracefmt.Tick{
			Tick: uint32(result.StepCount),
			X:    result.FinalX,
			Y:    result.FinalY,
		}); err != nil {
			return fmt.Errorf("bench: writing trace tick: %w", err)
		}
	}

	return nil
}

func resolveBenchConfig() (assist.AssistiveConfig, assist.MotorProfile, error) {
	var profile assist.MotorProfile
	if benchProfilePath != "" {
		data, err := os.ReadFile(benchProfilePath)
		if err != nil {
			return assist.AssistiveConfig{}, assist.MotorProfile{}, fmt.Errorf("bench: reading --profile: %w", err)
		}
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return assist.AssistiveConfig{}, assist.MotorProfile{}, fmt.Errorf("bench: parsing --profile: %w", err)
		}
	}

	cfg := policy.Map(profile)

	if benchAssistPath != "" {
		data, err := os.ReadFile(benchAssistPath)
		if err != nil {
			return assist.AssistiveConfig{}, assist.MotorProfile{}, fmt.Errorf("bench: reading --assist: %w", err)
		}
		parsed, diags, ok := assist.ParseConfigJSON(data)
		if !ok {
			return assist.AssistiveConfig{}, assist.MotorProfile{}, fmt.Errorf("bench: --assist failed validation: %v", diags)
		}
		cfg = parsed
	}

	return cfg, profile, nil
}

func parseHexSeed(s string) (uint32, error) {
	padded := s
	if len(padded)%2 != 0 {
		padded = "0" + padded
	}
	decoded, err := hex.DecodeString(padded)
	if err != nil {
		return 0, err
	}
	if len(decoded) > 4 {
		decoded = decoded[len(decoded)-4:]
	}
	var buf [4]byte
	copy(buf[4-len(decoded):], decoded)
	return binary.BigEndian.Uint32(buf[:]), nil
}
