// Package currents loads gridded ocean surface current data (uo/vo) from
// NetCDF files, with a deterministic synthetic fallback and a file cache.
package currents

import (
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fhs/go-netcdf/netcdf"

	"github.com/oceandrift/drift-api/internal/adapter/grid"
	"github.com/oceandrift/drift-api/internal/domain"
)

// Store provides velocity fields for a requested area and time window.
//
// Fields are cached twice: in memory per cache key, and on disk as NetCDF
// files under dataDir so repeated requests for the same area reuse the same
// data across restarts. When no file exists a synthetic field is generated
// and written back.
type Store struct {
	dataDir string
	cache   map[string]*grid.Field // Cache loaded fields.
	mu      sync.RWMutex           // Protect cache.
}

// NewStore creates a currents store rooted at dataDir. An empty dataDir
// disables the disk cache.
func NewStore(dataDir string) *Store {
	return &Store{
		dataDir: dataDir,
		cache:   make(map[string]*grid.Field),
	}
}

// CacheFileName builds the deterministic per-area cache file name.
func CacheFileName(lat, lon float64, start, end time.Time) string {
	return fmt.Sprintf("ocean_data_lat%.2f_lon%.2f_%s_%s.nc",
		lat, lon,
		start.UTC().Format("20060102T1504"),
		end.UTC().Format("20060102T1504"))
}

// FieldForArea returns a velocity field covering the area around (lat, lon)
// for [start, end]. A cached NetCDF file is used when present; otherwise a
// deterministic synthetic field is generated and cached.
func (s *Store) FieldForArea(lat, lon float64, start, end time.Time) (*grid.Field, error) {
	if !domain.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: invalid area center (%v, %v)", domain.ErrFieldUnavailable, lat, lon)
	}

	key := CacheFileName(lat, lon, start, end)

	s.mu.RLock()
	if f, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	var f *grid.Field
	if s.dataDir != "" {
		path := filepath.Join(s.dataDir, key)
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadFile(path)
			if err == nil {
				f = loaded
			}
			// A corrupt cache file is regenerated below.
		}
	}

	if f == nil {
		var err error
		f, err = SyntheticField(lat, lon, start, end, seedFor(key))
		if err != nil {
			return nil, err
		}
		if s.dataDir != "" {
			// Best effort: a failed cache write must not fail the request.
			_ = WriteField(filepath.Join(s.dataDir, key), f)
		}
	}

	s.mu.Lock()
	s.cache[key] = f
	s.mu.Unlock()

	return f, nil
}

// seedFor derives a stable RNG seed from the cache key so the same request
// always produces the same synthetic field.
func seedFor(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64())
}

// LoadFile reads a 3-D current field from a NetCDF file.
//
// The file must carry 1-D time/latitude/longitude axes and uo/vo variables
// dimensioned (time, latitude, longitude). The time axis holds seconds since
// the Unix epoch. Fill values become NaN cells, which sample as absent.
func LoadFile(path string) (*grid.Field, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	timeData, err := readAxis(nc, []string{"time", "t"})
	if err != nil {
		return nil, fmt.Errorf("time axis: %w", err)
	}
	latData, err := readAxis(nc, []string{"latitude", "lat", "y"})
	if err != nil {
		return nil, fmt.Errorf("latitude axis: %w", err)
	}
	lonData, err := readAxis(nc, []string{"longitude", "lon", "x"})
	if err != nil {
		return nil, fmt.Errorf("longitude axis: %w", err)
	}

	times := make([]time.Time, len(timeData))
	for i, sec := range timeData {
		times[i] = time.Unix(int64(sec), 0).UTC()
	}

	u, err := readCube(nc, []string{"uo", "u", "water_u", "eastward_current"},
		len(times), len(latData), len(lonData))
	if err != nil {
		return nil, fmt.Errorf("eastward velocity: %w", err)
	}
	v, err := readCube(nc, []string{"vo", "v", "water_v", "northward_current"},
		len(times), len(latData), len(lonData))
	if err != nil {
		return nil, fmt.Errorf("northward velocity: %w", err)
	}

	return grid.NewField(times, latData, lonData, u, v)
}

// WriteField writes a field as a NetCDF file readable by LoadFile.
func WriteField(path string, f *grid.Field) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER|netcdf.NETCDF4)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = ds.Close() }()

	times, lats, lons := f.Axes()
	u, v := f.Values()

	timeDim, err := ds.AddDim("time", uint64(len(times)))
	if err != nil {
		return err
	}
	latDim, err := ds.AddDim("latitude", uint64(len(lats)))
	if err != nil {
		return err
	}
	lonDim, err := ds.AddDim("longitude", uint64(len(lons)))
	if err != nil {
		return err
	}

	timeVar, err := ds.AddVar("time", netcdf.DOUBLE, []netcdf.Dim{timeDim})
	if err != nil {
		return err
	}
	latVar, err := ds.AddVar("latitude", netcdf.DOUBLE, []netcdf.Dim{latDim})
	if err != nil {
		return err
	}
	lonVar, err := ds.AddVar("longitude", netcdf.DOUBLE, []netcdf.Dim{lonDim})
	if err != nil {
		return err
	}
	uVar, err := ds.AddVar("uo", netcdf.DOUBLE, []netcdf.Dim{timeDim, latDim, lonDim})
	if err != nil {
		return err
	}
	vVar, err := ds.AddVar("vo", netcdf.DOUBLE, []netcdf.Dim{timeDim, latDim, lonDim})
	if err != nil {
		return err
	}

	timeSecs := make([]float64, len(times))
	for i, t := range times {
		timeSecs[i] = float64(t.Unix())
	}
	if err := timeVar.WriteFloat64s(timeSecs); err != nil {
		return err
	}
	if err := latVar.WriteFloat64s(lats); err != nil {
		return err
	}
	if err := lonVar.WriteFloat64s(lons); err != nil {
		return err
	}
	if err := uVar.WriteFloat64s(flatten(u)); err != nil {
		return err
	}
	if err := vVar.WriteFloat64s(flatten(v)); err != nil {
		return err
	}

	return nil
}

func flatten(cube [][][]float64) []float64 {
	var n int
	for _, slice := range cube {
		for _, row := range slice {
			n += len(row)
		}
	}
	flat := make([]float64, 0, n)
	for _, slice := range cube {
		for _, row := range slice {
			flat = append(flat, row...)
		}
	}
	return flat
}

// readAxis reads the first matching 1-D variable as float64.
func readAxis(nc netcdf.Dataset, names []string) ([]float64, error) {
	for _, name := range names {
		v, err := nc.Var(name)
		if err != nil {
			continue
		}
		data, err := readFloat64Var(v)
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("variable not found (tried: %v)", names)
}

// readCube reads the first matching 3-D variable dimensioned
// (time, latitude, longitude) and reshapes it. Fill values become NaN.
func readCube(nc netcdf.Dataset, names []string, nTime, nLat, nLon int) ([][][]float64, error) {
	var dataVar netcdf.Var
	var found bool
	for _, name := range names {
		if v, err := nc.Var(name); err == nil {
			dataVar = v
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("variable not found (tried: %v)", names)
	}

	dims, err := dataVar.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 3 {
		return nil, fmt.Errorf("expected 3D data, got %dD", len(dims))
	}
	for i, want := range []int{nTime, nLat, nLon} {
		n, err := dims[i].Len()
		if err != nil {
			return nil, fmt.Errorf("failed to get dim%d length: %w", i, err)
		}
		if n != uint64(want) {
			return nil, fmt.Errorf("dimension mismatch: dim%d is %d, expected %d", i, n, want)
		}
	}

	total := nTime * nLat * nLon
	flat, err := readFloats(dataVar, total)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	if fv, ok := getFillValue(dataVar); ok {
		for i, val := range flat {
			if val == fv {
				flat[i] = math.NaN()
			}
		}
	}

	cube := make([][][]float64, nTime)
	for t := 0; t < nTime; t++ {
		cube[t] = make([][]float64, nLat)
		for i := 0; i < nLat; i++ {
			offset := (t*nLat + i) * nLon
			cube[t][i] = flat[offset : offset+nLon]
		}
	}
	return cube, nil
}

// getFillValue returns the _FillValue or missing_value attribute if present.
func getFillValue(v netcdf.Var) (float64, bool) {
	for _, name := range []string{"_FillValue", "missing_value"} {
		a := v.Attr(name)
		if a == (netcdf.Attr{}) {
			continue
		}
		if n, err := a.Len(); err == nil && n > 0 {
			buf64 := make([]float64, 1)
			if err := a.ReadFloat64s(buf64); err == nil {
				return buf64[0], true
			}
			buf32 := make([]float32, 1)
			if err := a.ReadFloat32s(buf32); err == nil {
				return float64(buf32[0]), true
			}
		}
	}
	return 0, false
}

// readFloat64Var reads a 1D float64 array from a NetCDF variable.
func readFloat64Var(v netcdf.Var) ([]float64, error) {
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected 1D variable, got %dD", len(dims))
	}
	length, err := dims[0].Len()
	if err != nil {
		return nil, err
	}
	return readFloats(v, int(length))
}

// readFloats reads a variable of known total length as float64, converting
// from float or int storage where needed.
func readFloats(v netcdf.Var, total int) ([]float64, error) {
	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get var type: %w", err)
	}
	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, total)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, total)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, total)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.INT:
		tmp := make([]int32, total)
		if err := v.ReadInt32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, total)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported var type: %v", t)
	}
}
