package basin_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/magpen/internal/basin"
	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/vec"
)

var _ = Describe("Field", func() {
	var (
		cfg     pendulum.Config
		magnets []pendulum.Magnet
	)

	BeforeEach(func() {
		cfg = pendulum.DefaultConfig()
		cfg.TimeScale = 1
		magnets = pendulum.Ring(3, 0.04, 0.04, 30)
	})

	Describe("construction", func() {
		It("rejects empty grids", func() {
			_, err := basin.New(cfg, magnets, vec.Vec2{}, 0.01, 0, 5)
			Expect(err).To(MatchError(basin.ErrBadGrid))

			_, err = basin.New(cfg, magnets, vec.Vec2{}, 0.01, 5, -1)
			Expect(err).To(MatchError(basin.ErrBadGrid))
		})

		It("rejects non-positive spacing", func() {
			_, err := basin.New(cfg, magnets, vec.Vec2{}, 0, 5, 5)
			Expect(err).To(MatchError(basin.ErrBadGrid))
		})

		It("rejects fields without magnets", func() {
			_, err := basin.New(cfg, nil, vec.Vec2{}, 0.01, 5, 5)
			Expect(err).To(MatchError(basin.ErrBadGrid))
		})

		It("rejects invalid configurations before building cells", func() {
			bad := cfg
			bad.Mass = 0
			_, err := basin.New(bad, magnets, vec.Vec2{}, 0.01, 5, 5)
			Expect(err).To(MatchError(pendulum.ErrBadConfig))
		})

		It("rejects grids beyond tether reach", func() {
			_, err := basin.New(cfg, magnets, vec.Vec2{X: 0.25, Y: 0.25}, 0.01, 4, 4)
			Expect(err).To(MatchError(pendulum.ErrRopeExceeded))
		})

		It("places cells at rest on the grid lattice", func() {
			origin := vec.Vec2{X: -0.05, Y: -0.02}
			f, err := basin.New(cfg, magnets, origin, 0.01, 6, 5)
			Expect(err).NotTo(HaveOccurred())

			w, h := f.Size()
			Expect(w).To(Equal(6))
			Expect(h).To(Equal(5))

			pos := f.CellPos(2, 3)
			Expect(pos.X).To(BeNumerically("~", -0.03, 1e-12))
			Expect(pos.Y).To(BeNumerically("~", 0.01, 1e-12))
			Expect(f.State(2, 3)).To(Equal(pendulum.State{Pos: pos}))
		})
	})

	Describe("advancing", func() {
		It("does nothing for zero duration", func() {
			f, err := basin.New(cfg, magnets, vec.Vec2{X: -0.04, Y: -0.03}, 0.01, 9, 7)
			Expect(err).NotTo(HaveOccurred())

			before := make([]pendulum.State, 0, 9*7)
			for y := 0; y < 7; y++ {
				for x := 0; x < 9; x++ {
					before = append(before, f.State(x, y))
				}
			}

			Expect(f.Advance(context.Background(), 0)).To(Succeed())

			for y := 0; y < 7; y++ {
				for x := 0; x < 9; x++ {
					Expect(f.State(x, y)).To(Equal(before[y*9+x]))
				}
			}
		})

		It("is bit-identical regardless of worker count", func() {
			coarse := cfg
			coarse.MicroStep = 0.005

			one, err := basin.New(coarse, magnets, vec.Vec2{X: -0.04, Y: -0.03}, 0.01, 9, 7)
			Expect(err).NotTo(HaveOccurred())
			one.SetWorkers(1)

			many, err := basin.New(coarse, magnets, vec.Vec2{X: -0.04, Y: -0.03}, 0.01, 9, 7)
			Expect(err).NotTo(HaveOccurred())
			many.SetWorkers(8)

			Expect(one.Advance(context.Background(), 2)).To(Succeed())
			Expect(many.Advance(context.Background(), 2)).To(Succeed())

			for y := 0; y < 7; y++ {
				for x := 0; x < 9; x++ {
					Expect(one.State(x, y)).To(Equal(many.State(x, y)),
						"cell (%d,%d) depends on worker count", x, y)
				}
			}
		})

		It("honors a canceled context without touching cells", func() {
			f, err := basin.New(cfg, magnets, vec.Vec2{X: -0.04, Y: -0.03}, 0.01, 9, 7)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			Expect(f.Advance(ctx, 1)).To(MatchError(context.Canceled))
			Expect(f.State(0, 0)).To(Equal(pendulum.State{Pos: f.CellPos(0, 0)}))
		})
	})

	Describe("classification", func() {
		twoPoles := []pendulum.Magnet{
			{Position: vec.Vec3{X: 1, Y: 0, Z: 0.5}, Tag: 0},
			{Position: vec.Vec3{X: -1, Y: 0, Z: 0.5}, Tag: 1},
		}

		It("tags cells by nearest magnet", func() {
			f, err := basin.New(cfg, twoPoles, vec.Vec2{X: -0.1, Y: 0}, 0.2, 2, 1)
			Expect(err).NotTo(HaveOccurred())

			r := f.Classify()
			Expect(r.At(0, 0)).To(Equal(1))
			Expect(r.At(1, 0)).To(Equal(0))
			Expect(r.Counts()).To(Equal(map[int]int{0: 1, 1: 1}))
		})

		It("keeps the earliest magnet on ties", func() {
			f, err := basin.New(cfg, twoPoles, vec.Vec2{}, 0.01, 1, 1)
			Expect(err).NotTo(HaveOccurred())

			r := f.Classify()
			Expect(r.At(0, 0)).To(Equal(0))
			Expect(r.DistSq[0]).To(Equal(1.0))
		})
	})

	Describe("settling a symmetric ring", func() {
		var strong pendulum.Config

		BeforeEach(func() {
			strong = cfg
			strong.MicroStep = 0.002
			strong.MagnetCoeff = 0.002
		})

		ringShares := func(phaseDeg float64) map[int]float64 {
			r, err := basin.Classify(context.Background(), strong,
				pendulum.Ring(3, 0.04, 0.04, phaseDeg),
				vec.Vec2{X: -0.06, Y: -0.06}, 0.005, 25, 25, 6)
			Expect(err).NotTo(HaveOccurred())

			counts := r.Counts()
			total := 0
			for _, n := range counts {
				total += n
			}
			Expect(total).To(Equal(25 * 25))

			shares := make(map[int]float64, len(counts))
			for tag, n := range counts {
				shares[tag] = float64(n) / float64(total)
			}
			return shares
		}

		It("splits the grid into three near-equal basins", func() {
			shares := ringShares(30)
			Expect(shares).To(HaveLen(3))
			for tag, share := range shares {
				Expect(share).To(BeNumerically("~", 1.0/3, 0.05),
					"basin %d off the symmetric share at %.3f", tag, share)
			}
		})

		It("survives rotation by the ring's own symmetry angle", func() {
			// Re-phasing the ring by 120 degrees leaves the magnet
			// positions in place and shifts every tag by one, so the
			// basin of tag i+1 at phase 30 is the basin of tag i at
			// phase 150, up to grid discretization.
			base := ringShares(30)
			rotated := ringShares(150)
			Expect(rotated).To(HaveLen(len(base)))
			for tag := 0; tag < 3; tag++ {
				Expect(rotated[tag]).To(BeNumerically("~", base[(tag+1)%3], 0.03),
					"rotated basin %d share %.4f drifted from %.4f", tag, rotated[tag], base[(tag+1)%3])
			}
		})
	})
})

var _ = Describe("GridAround", func() {
	It("centers the pixel grid on the given point", func() {
		c := vec.Vec2{X: 0.01, Y: -0.02}
		origin, spacing := basin.GridAround(c, 100, 4, 2)

		Expect(spacing).To(BeNumerically("~", 0.01, 1e-12))
		Expect(origin.X).To(BeNumerically("~", -0.01, 1e-12))
		Expect(origin.Y).To(BeNumerically("~", -0.03, 1e-12))
	})
})
