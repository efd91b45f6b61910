package index

import (
	"context"

	"github.com/viant/afs"

	"github.com/backmassage/srindex/internal/config"
)

// TrainingIndex builds the training table for root with the stock DIV2K
// layout, listing through afs.
func TrainingIndex(ctx context.Context, root string) (Table, error) {
	res, err := BuildTraining(ctx, NewLister(afs.New()), config.DefaultTrainingLayout(root))
	if err != nil {
		return nil, err
	}
	return res.Table, nil
}

// BenchmarkIndex builds the benchmark table for root with the stock dataset
// list, listing through afs.
func BenchmarkIndex(ctx context.Context, root string) (Table, error) {
	res, err := BuildBenchmark(ctx, NewLister(afs.New()), config.DefaultBenchmarkLayout(root))
	if err != nil {
		return nil, err
	}
	return res.Table, nil
}
