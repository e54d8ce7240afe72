package dataset

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/scopelab/eegscope/core"
)

// Load reads a delimited text recording from the given path, gzip-compressed
// if the path ends in .gz. Values are separated by commas, tabs, or spaces.
// A first line that does not parse as numbers is taken as channel names. The
// recording config comes from a JSON sidecar file next to the data file,
// merged over the given fallback. The returned matrix is always in
// rows-are-time orientation, column-oriented files are transposed on load.
func Load(path string, fallback core.RecordingConfig) (core.Recording, error) {
	file, err := os.Open(path)
	if err != nil {
		return core.Recording{}, errors.Wrap(err, "cannot open recording")
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return core.Recording{}, errors.Wrapf(err, "cannot decompress %s", path)
		}
		defer gz.Close()
		reader = gz
	}

	config, err := sidecarConfig(path, fallback)
	if err != nil {
		return core.Recording{}, err
	}

	matrix, header, err := parseMatrix(reader)
	if err != nil {
		return core.Recording{}, errors.Wrapf(err, "cannot parse %s", path)
	}

	if config.Orientation == core.ColumnsAreTime {
		matrix = transpose(matrix)
		config.Orientation = core.RowsAreTime
	} else {
		config.Orientation = core.RowsAreTime
		if len(header) > 0 && len(config.ChannelNames) == 0 {
			config.ChannelNames = header
		}
	}

	if config.SampleRate <= 0 {
		return core.Recording{}, errors.Errorf("%s declares no sampling rate", sidecarPath(path))
	}
	if config.ChannelCount == 0 {
		config.ChannelCount = matrix.Channels()
	}
	if config.ChannelCount != matrix.Channels() {
		return core.Recording{}, errors.Errorf("%s has %d channels, the config declares %d", path, matrix.Channels(), config.ChannelCount)
	}

	return core.Recording{Matrix: matrix, Config: config}, nil
}

// Key derives the session store key of a recording path: the base name
// without extensions.
func Key(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".gz")
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func sidecarPath(path string) string {
	return strings.TrimSuffix(path, ".gz") + ".json"
}

func sidecarConfig(path string, fallback core.RecordingConfig) (core.RecordingConfig, error) {
	result := fallback
	raw, err := os.ReadFile(sidecarPath(path))
	if os.IsNotExist(err) {
		return result, nil
	}
	if err != nil {
		return result, errors.Wrap(err, "cannot read recording config")
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, errors.Wrapf(err, "cannot parse %s", sidecarPath(path))
	}
	return result, nil
}

func parseMatrix(reader io.Reader) (core.SampleMatrix, []string, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var matrix core.SampleMatrix
	var header []string
	headerSeen := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := split(line)
		row, err := parseRow(fields)
		if err != nil {
			if !headerSeen && len(matrix) == 0 {
				header = fields
				headerSeen = true
				continue
			}
			return nil, nil, errors.Wrapf(err, "line %d", lineNo)
		}
		if len(matrix) > 0 && len(row) != len(matrix[0]) {
			return nil, nil, errors.Errorf("line %d has %d values, expected %d", lineNo, len(row), len(matrix[0]))
		}
		matrix = append(matrix, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "cannot read recording")
	}
	if len(matrix) == 0 {
		return nil, nil, errors.New("the recording contains no samples")
	}
	return matrix, header, nil
}

func split(line string) []string {
	if strings.ContainsRune(line, ',') {
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return fields
	}
	return strings.Fields(line)
}

func parseRow(fields []string) ([]float64, error) {
	row := make([]float64, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Errorf("cannot parse value %q", field)
		}
		row[i] = value
	}
	return row, nil
}

func transpose(matrix core.SampleMatrix) core.SampleMatrix {
	if len(matrix) == 0 {
		return matrix
	}
	result := make(core.SampleMatrix, len(matrix[0]))
	for i := range result {
		row := make([]float64, len(matrix))
		for j := range row {
			row[j] = matrix[j][i]
		}
		result[i] = row
	}
	return result
}
