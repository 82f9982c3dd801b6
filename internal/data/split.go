package data

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
)

// TrainTestSplit shuffles the rows of data and target with rng and returns
// train and test partitions. floor(rows * testRatio) rows go to test.
func TrainTestSplit(data, target *Frame, testRatio float64, rng *rand.Rand) (trainX, testX, trainY, testY *Frame, err error) {
	if testRatio < 0 || testRatio > 1 {
		return nil, nil, nil, nil, fmt.Errorf("test ratio must be between 0 and 1, got %v", testRatio)
	}
	if data.Len() != target.Len() {
		return nil, nil, nil, nil, fmt.Errorf("data has %d rows, target has %d", data.Len(), target.Len())
	}

	total := data.Len()
	testSize := int(float64(total) * testRatio)
	trainSize := total - testSize

	var perm []int
	if rng != nil {
		perm = rng.Perm(total)
	} else {
		perm = rand.Perm(total)
	}

	trainX, testX = NewFrame(data.columns...), NewFrame(data.columns...)
	trainY, testY = NewFrame(target.columns...), NewFrame(target.columns...)
	for i, idx := range perm {
		if i < trainSize {
			trainX.rows = append(trainX.rows, data.rows[idx])
			trainY.rows = append(trainY.rows, target.rows[idx])
		} else {
			testX.rows = append(testX.rows, data.rows[idx])
			testY.rows = append(testY.rows, target.rows[idx])
		}
	}
	return trainX, testX, trainY, testY, nil
}

// Load reads a frame from a .csv or .json file.
func Load(filename string) (*Frame, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return LoadCSV(filename)
	case ".json":
		return LoadJSON(filename)
	default:
		return nil, fmt.Errorf("unsupported data format %q", ext)
	}
}
