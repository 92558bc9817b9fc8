package main

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/mr-tron/base58"
	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iotaledger/banksnapshot/packages/app/metrics"
	"github.com/iotaledger/banksnapshot/packages/bank"
	"github.com/iotaledger/banksnapshot/packages/database"
	"github.com/iotaledger/banksnapshot/packages/snapshot"
	"github.com/iotaledger/banksnapshot/packages/snapshot/archive"
)

func main() {
	cfg, err := parseFlags()
	if err != nil {
		log.Fatal(err)
	}

	toolLogger := logger.NewExampleLogger("BankSnapshot")
	registry := prometheus.NewRegistry()
	codecMetrics := metrics.NewCodec()
	codecMetrics.MustRegister(registry)

	tip, err := buildChain(cfg, toolLogger)
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to build sample chain"))
	}

	encoded, err := snapshot.NewEncoder(snapshot.WithLogger(toolLogger), snapshot.WithMetrics(codecMetrics)).Encode(tip)
	if err != nil {
		log.Fatal(err)
	}
	file := snapshot.NewFile(tip.Slot(), encoded)
	if err = file.WriteFile(cfg.FileName); err != nil {
		log.Fatal(err)
	}
	log.Printf("created snapshot of slot %d with %d bytes: %s", tip.Slot(), len(encoded), cfg.FileName)

	if cfg.ArchiveDir != "" {
		if err = archiveSnapshot(cfg.ArchiveDir, file); err != nil {
			log.Fatal(err)
		}
	}

	if cfg.Diagnose {
		diagnosticPrintSnapshotFromFile(cfg.FileName, toolLogger, codecMetrics)
	}
	if cfg.Metrics {
		printMetrics(registry)
	}
}

func parseFlags() (cfg *config, err error) {
	flag.StringP("filename", "f", defaultFileName, "the name of the generated snapshot file")
	flag.Uint64("slots", defaultSlots, "the number of slots that the sample chain is advanced by")
	flag.String("seed", "", "the seed of the sample chain provided in base58 format")
	flag.Int64("creation-time", defaultCreationTime, "the genesis creation time of the sample chain (unix seconds)")
	flag.BoolP("diagnose", "d", false, "decode the generated snapshot file and check its validity")
	flag.Bool("metrics", false, "print the collected codec metrics")
	flag.String("archive-dir", "", "the directory of the database that the snapshot is archived in")
	configFile := flag.StringP("config", "c", "", "an optional config file that overrides the defaults")
	flag.Parse()

	parameters := viper.New()
	parameters.SetEnvPrefix("bank_snapshot")
	parameters.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	parameters.AutomaticEnv()
	if err = parameters.BindPFlags(flag.CommandLine); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}
	if *configFile != "" {
		parameters.SetConfigFile(*configFile)
		if err = parameters.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", *configFile)
		}
	}

	cfg = &config{
		FileName:     parameters.GetString("filename"),
		Slots:        parameters.GetUint64("slots"),
		Seed:         defaultSeed,
		CreationTime: parameters.GetInt64("creation-time"),
		Diagnose:     parameters.GetBool("diagnose"),
		Metrics:      parameters.GetBool("metrics"),
		ArchiveDir:   parameters.GetString("archive-dir"),
	}
	if seed := parameters.GetString("seed"); seed != "" {
		if cfg.Seed, err = base58.Decode(seed); err != nil {
			return nil, errors.Wrap(err, "failed to decode base58 seed")
		}
	}

	return cfg, nil
}

// buildChain creates a genesis bank with a single staked validator and advances it by the configured number of slots.
func buildChain(cfg *config, toolLogger *logger.Logger) (tip *bank.Bank, err error) {
	keys := bank.NewKeyGenerator(cfg.Seed)
	if tip, err = bank.New(bank.GenesisFields(keys, cfg.CreationTime), bank.WithLogger(toolLogger)); err != nil {
		return nil, err
	}

	voteAccount, stakeAccount := keys.Pubkey(), keys.Pubkey()
	if err = tip.StoreVoteAccount(voteAccount, bank.VoteAccount{
		Stake: 1_000_000_000,
		Account: bank.Account{
			Lamports: 27_074_400,
			Data: bank.VoteState{
				NodePubkey:      keys.Pubkey(),
				AuthorizedVoter: keys.Pubkey(),
				Commission:      10,
			}.Bytes(),
			Owner: keys.Pubkey(),
		},
	}); err != nil {
		return nil, err
	}
	if err = tip.Delegate(stakeAccount, bank.Delegation{
		VoterPubkey:        voteAccount,
		Stake:              1_000_000_000,
		DeactivationEpoch:  math.MaxUint64,
		WarmupCooldownRate: 0.25,
	}); err != nil {
		return nil, err
	}
	tip.Freeze()

	for slot := bank.Slot(1); slot <= cfg.Slots; slot++ {
		if tip, err = bank.NewFromParent(tip, keys.Pubkey(), slot, bank.WithLogger(toolLogger)); err != nil {
			return nil, err
		}

		for _, hardForkSlot := range hardForkSlots {
			if hardForkSlot == slot {
				if err = tip.RegisterHardFork(slot); err != nil {
					return nil, err
				}
			}
		}

		if slot == cfg.Slots {
			commission := uint8(10)
			if err = tip.SetEpochRewardStatus(bank.EpochRewardStatusActive{
				StartBlockHeight: tip.Header().BlockHeight,
				Rewards: []bank.StakeReward{{
					StakePubkey: stakeAccount,
					StakeAccount: bank.Account{
						Lamports: 1_000_000_500,
						Owner:    keys.Pubkey(),
					},
					RewardInfo: bank.RewardInfo{
						Kind:        bank.RewardKindStaking,
						Lamports:    500,
						PostBalance: 1_000_000_500,
						Commission:  &commission,
					},
				}},
			}); err != nil {
				return nil, err
			}
		}

		tip.Freeze()
	}

	return tip, nil
}

func diagnosticPrintSnapshotFromFile(fileName string, toolLogger *logger.Logger, codecMetrics *metrics.Codec) {
	file, err := snapshot.ReadFile(fileName)
	if err != nil {
		log.Fatal(err)
	}

	decoded, err := snapshot.NewDecoder(snapshot.WithLogger(toolLogger), snapshot.WithMetrics(codecMetrics)).Decode(file.Body)
	if err != nil {
		log.Fatal(err)
	}
	decoded.Freeze()

	fmt.Println("--- File ---")
	fmt.Println(file)

	fmt.Println("--- Bank ---")
	fmt.Println(decoded)

	fmt.Println("--- Staked Nodes ---")
	for node, stake := range decoded.StakedNodes() {
		fmt.Printf("%s: %d\n", node, stake)
	}

	fmt.Println("--- Hard Forks ---")
	for _, hardFork := range decoded.HardForks().Read() {
		fmt.Printf("slot %d: %d\n", hardFork.Slot, hardFork.Count)
	}

	fmt.Println("--- Epoch Reward Status ---")
	fmt.Println(decoded.EpochRewardStatus().Read())

	reencoded, err := snapshot.NewEncoder(snapshot.WithLogger(toolLogger), snapshot.WithMetrics(codecMetrics)).Encode(decoded)
	if err != nil {
		log.Fatal(err)
	}
	if !bytes.Equal(reencoded, file.Body) {
		log.Fatal("re-encoded snapshot differs from the snapshot file")
	}

	db := database.NewMemDB()
	defer db.Close()

	snapshotArchive := archive.New(db.NewStore())
	if err = snapshotArchive.Store(file); err != nil {
		log.Fatal(err)
	}
	latest, err := snapshotArchive.Latest()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Archive ---")
	fmt.Println(latest)
}

// archiveSnapshot stores the snapshot file in the persistent archive in the given directory.
func archiveSnapshot(archiveDir string, file *snapshot.File) (err error) {
	db, err := database.NewDB(archiveDir)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "failed to close archive")
		}
	}()

	store := db.NewStore()
	if err = database.CheckVersion(store); err != nil {
		return err
	}

	snapshotArchive := archive.New(store)
	if err = snapshotArchive.Store(file); err != nil {
		return err
	}

	slots, err := snapshotArchive.Slots()
	if err != nil {
		return err
	}
	log.Printf("archived snapshot of slot %d in %s (%d snapshots)", file.Slot, archiveDir, len(slots))

	return db.GC()
}

func printMetrics(registry *prometheus.Registry) {
	families, err := registry.Gather()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Metrics ---")
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, label.GetName()+"="+label.GetValue())
			}

			switch {
			case metric.GetCounter() != nil:
				fmt.Printf("%s{%s} %v\n", family.GetName(), strings.Join(labels, ","), metric.GetCounter().GetValue())
			case metric.GetGauge() != nil:
				fmt.Printf("%s{%s} %v\n", family.GetName(), strings.Join(labels, ","), metric.GetGauge().GetValue())
			case metric.GetHistogram() != nil:
				fmt.Printf("%s{%s} count=%d sum=%v\n", family.GetName(), strings.Join(labels, ","), metric.GetHistogram().GetSampleCount(), metric.GetHistogram().GetSampleSum())
			}
		}
	}
}
