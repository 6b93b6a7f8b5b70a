package palette

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"chromaflow/internal/colour"
	"chromaflow/internal/security"
)

// sampleBudget caps how many pixels extraction reads from an image.
const sampleBudget = 2000

// labMergeThreshold is the CIE Lab distance below which two centroids
// count as the same colour and merge.
const labMergeThreshold = 0.02

// KMeansExtractor clusters sampled pixels into a fixed number of
// representative colours.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
}

// NewKMeansExtractor returns an extractor with the default limits: at
// most 20 iterations, stopping early once centroids drift less than 2
// units per round.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{maxIterations: 20, convergence: 2.0}
}

// Extract clusters the image's colours and returns them heaviest cluster
// first. An image with no more unique colours than requested skips
// clustering and returns the unique colours as they are.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("colour count too large: %d (maximum: 256)", count)
	}

	pixels := samplePixels(img)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	unique := uniqueColours(pixels)
	if count >= len(unique) {
		return New(unique), nil
	}

	centroids, weights := e.cluster(pixels, count)
	centroids, weights = mergeSimilarCentroids(centroids, weights)

	colours := make([]colour.RGB, len(centroids))
	for i, c := range centroids {
		colours[i] = c.rgb()
	}
	sortByWeight(colours, weights)

	return NewWithWeights(colours, weights), nil
}

// uniqueColours deduplicates sampled pixels preserving first-seen order.
func uniqueColours(pixels []color.Color) []colour.RGB {
	seen := make(map[colour.RGB]struct{}, len(pixels))
	out := make([]colour.RGB, 0, len(pixels))
	for _, p := range pixels {
		rgb := colour.ToRGB(p)
		if _, ok := seen[rgb]; ok {
			continue
		}
		seen[rgb] = struct{}{}
		out = append(out, rgb)
	}
	return out
}

// samplePixels reads at most sampleBudget pixels. Small images are read
// whole; larger ones are walked on a coarse grid so extraction cost does
// not grow with wallpaper resolution.
func samplePixels(img image.Image) []color.Color {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()

	step := 1
	if total > sampleBudget {
		step = max(int(math.Sqrt(float64(total)/float64(sampleBudget))), 1)
	}

	pixels := make([]color.Color, 0, min(total, sampleBudget))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, img.At(x, y))
			if len(pixels) >= sampleBudget {
				return pixels
			}
		}
	}
	return pixels
}

// point3D is a position in RGB space during clustering.
type point3D struct {
	R, G, B float64
}

func (p point3D) distance(q point3D) float64 {
	dr, dg, db := p.R-q.R, p.G-q.G, p.B-q.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// rgb rounds the point back to a colour channel triple.
func (p point3D) rgb() colour.RGB {
	return colour.RGB{
		R: security.SafeUint8(int(math.Round(p.R))),
		G: security.SafeUint8(int(math.Round(p.G))),
		B: security.SafeUint8(int(math.Round(p.B))),
	}
}

// lab views the point as a go-colorful colour for perceptual distance.
func (p point3D) lab() colorful.Color {
	return colorful.Color{R: p.R / 255.0, G: p.G / 255.0, B: p.B / 255.0}
}

// cluster runs Lloyd's algorithm over the sampled pixels and returns k
// centroids with their normalised cluster weights.
func (e *KMeansExtractor) cluster(pixels []color.Color, k int) ([]point3D, []float64) {
	points := make([]point3D, len(pixels))
	for i, c := range pixels {
		rgb := colour.ToRGB(c)
		points[i] = point3D{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)}
	}

	centroids := seedCentroids(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		// Reassign points; settle once under 1% of them still move.
		moved := 0
		for i, p := range points {
			n := nearest(p, centroids)
			if assignments[i] != n {
				assignments[i] = n
				moved++
			}
		}
		if float64(moved) < 0.01*float64(len(points)) {
			break
		}

		next := meanCentroids(points, assignments, k)
		drift := 0.0
		for i := range centroids {
			drift += centroids[i].distance(next[i])
		}
		centroids = next

		if drift/float64(k) < e.convergence {
			break
		}
	}

	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	for i := range weights {
		weights[i] /= float64(len(assignments))
	}

	return centroids, weights
}

// seedCentroids picks starting centroids k-means++ style: the first at
// random, each further one with probability proportional to its squared
// distance from the seeds chosen so far.
func seedCentroids(points []point3D, k int) []point3D {
	if len(points) == 0 || k == 0 {
		return nil
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rand.Intn(len(points))])

	for len(centroids) < k {
		dists := make([]float64, len(points))
		total := 0.0
		for i, p := range points {
			d := p.distance(centroids[nearest(p, centroids)])
			dists[i] = d * d
			total += dists[i]
		}

		if total == 0 {
			// Every point already sits on a seed; nudge a duplicate so
			// the requested k is still produced.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rand.Float64() * total
		acc := 0.0
		for i, d := range dists {
			acc += d
			if acc >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

// nearest returns the index of the centroid closest to p.
func nearest(p point3D, centroids []point3D) int {
	best, bestDist := 0, math.MaxFloat64
	for i, c := range centroids {
		if d := p.distance(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// meanCentroids averages each cluster's members into its new centroid.
// A cluster that lost all its members restarts from a random point.
func meanCentroids(points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, p := range points {
		a := assignments[i]
		sums[a].R += p.R
		sums[a].G += p.G
		sums[a].B += p.B
		counts[a]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = points[rand.Intn(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return centroids
}

// mergeSimilarCentroids folds centroids closer than labMergeThreshold in
// Lab space into one, accumulating their weights, so near-duplicate
// clusters do not crowd the palette.
func mergeSimilarCentroids(centroids []point3D, weights []float64) ([]point3D, []float64) {
	var merged []point3D
	var mergedWeights []float64

	for i, c := range centroids {
		target := -1
		for j, m := range merged {
			if c.lab().DistanceLab(m.lab()) < labMergeThreshold {
				target = j
				break
			}
		}
		if target >= 0 {
			mergedWeights[target] += weights[i]
			continue
		}
		merged = append(merged, c)
		mergedWeights = append(mergedWeights, weights[i])
	}

	return merged, mergedWeights
}

// sortByWeight orders both slices in place, heaviest cluster first. The
// sort is stable so equal-weight colours keep their extraction order.
func sortByWeight(colours []colour.RGB, weights []float64) {
	order := make([]int, len(colours))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]
	})

	cs := make([]colour.RGB, len(colours))
	ws := make([]float64, len(weights))
	for i, idx := range order {
		cs[i] = colours[idx]
		ws[i] = weights[idx]
	}
	copy(colours, cs)
	copy(weights, ws)
}
