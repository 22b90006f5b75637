package particle

import "math"

// cell addresses one square of the spatial hash.
type cell struct {
	x, y int
}

// neighborOffsets lists the cell itself followed by its eight neighbours.
// The order is part of the output contract: it fixes traversal order and
// therefore the order of particles inside a path.
var neighborOffsets = [9][2]int{
	{0, 0}, {-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1},
}

// ClusterParticles partitions same-color particles into connected clusters.
//
// Two particles are connected when their distance is at most mergeDistance;
// a cluster is a maximal set connected through such links. Particles are
// bucketed into square cells of side mergeDistance, so every candidate
// neighbour of a particle lies in its own cell or one of the eight around
// it. Each unvisited particle seeds a breadth-first expansion over those
// nine cells.
//
// Clusters come out in seed order, and particles inside a cluster in
// visit order.
func ClusterParticles(particles []Particle, mergeDistance float64) [][]Particle {
	if len(particles) == 0 {
		return nil
	}

	cellSize := mergeDistance
	cellOf := func(p Particle) cell {
		return cell{
			x: int(math.Floor(float64(p.X) / cellSize)),
			y: int(math.Floor(float64(p.Y) / cellSize)),
		}
	}

	grid := make(map[cell][]int)
	for i, p := range particles {
		c := cellOf(p)
		grid[c] = append(grid[c], i)
	}

	visited := make([]bool, len(particles))
	queue := make([]int, 0, 64)
	var clusters [][]Particle

	for i := range particles {
		if visited[i] {
			continue
		}
		visited[i] = true
		cluster := []Particle{particles[i]}
		queue = append(queue[:0], i)

		for head := 0; head < len(queue); head++ {
			current := particles[queue[head]]
			c := cellOf(current)

			for _, off := range neighborOffsets {
				for _, j := range grid[cell{x: c.x + off[0], y: c.y + off[1]}] {
					if visited[j] {
						continue
					}
					other := particles[j]
					dx := float64(current.X - other.X)
					dy := float64(current.Y - other.Y)
					if math.Sqrt(dx*dx+dy*dy) <= mergeDistance {
						visited[j] = true
						cluster = append(cluster, other)
						queue = append(queue, j)
					}
				}
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}
