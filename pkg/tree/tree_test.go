package tree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/matzehuels/ontograph/pkg/ontology"
)

func nodes(codes ...string) []ontology.Node {
	out := make([]ontology.Node, len(codes))
	for i, c := range codes {
		out[i] = ontology.Node{Code: c}
	}
	return out
}

func codes(ns []*Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Code()
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildSimpleChain(t *testing.T) {
	r := Build(map[ontology.Kind][]ontology.Node{
		ontology.KindValueChain: nodes("vc1"),
		ontology.KindModule:     nodes("m1"),
		ontology.KindMetric:     nodes("k1"),
	}, []ontology.Edge{
		{From: "m1", To: "vc1", Type: "belongs_to"},
		{From: "k1", To: "m1", Type: "belongs_to_module"},
	}, Options{})

	if len(r.Roots) != 1 {
		t.Fatalf("Roots = %v, want [vc1]", codes(r.Roots))
	}
	vc := r.Roots[0]
	if vc.Code() != "vc1" || vc.IsOrphanBucket {
		t.Fatalf("root = %+v", vc)
	}
	if got := codes(vc.Children); !equal(got, []string{"m1"}) {
		t.Fatalf("vc1 children = %v", got)
	}
	if got := codes(vc.Children[0].Children); !equal(got, []string{"k1"}) {
		t.Fatalf("m1 children = %v", got)
	}
	if vc.DescendantMetricCount != 1 || vc.Children[0].DescendantMetricCount != 1 {
		t.Errorf("counts = %d, %d, want 1, 1", vc.DescendantMetricCount, vc.Children[0].DescendantMetricCount)
	}
}

func TestBuildOrphanMetricKeepsEntities(t *testing.T) {
	for _, attach := range []bool{false, true} {
		t.Run(fmt.Sprintf("attach=%v", attach), func(t *testing.T) {
			r := Build(map[ontology.Kind][]ontology.Node{
				ontology.KindMetric: nodes("k2"),
				ontology.KindEntity: nodes("e1"),
			}, []ontology.Edge{
				{From: "k2", To: "e1", Type: "uses"},
			}, Options{AttachEntitiesToMetrics: attach})

			kpis, ok := r.Bucket(BucketMetrics)
			if !ok {
				t.Fatal("missing Unassigned KPIs bucket")
			}
			if kpis.Label() != LabelMetrics {
				t.Errorf("Label() = %q", kpis.Label())
			}
			if len(kpis.Children) != 1 || kpis.Children[0].Code() != "k2" {
				t.Fatalf("bucket children = %v", codes(kpis.Children))
			}
			if got := codes(kpis.Children[0].Children); !equal(got, []string{"e1"}) {
				t.Errorf("k2 children = %v, want [e1]", got)
			}
			if _, ok := r.Bucket(BucketEntities); ok {
				t.Error("e1 is used and must not appear under Unassigned Entities")
			}
		})
	}
}

func TestBuildAttachModes(t *testing.T) {
	collections := map[ontology.Kind][]ontology.Node{
		ontology.KindValueChain: nodes("vc"),
		ontology.KindMetric:     nodes("k1", "k2"),
		ontology.KindEntity:     nodes("e1", "e2"),
	}
	edges := []ontology.Edge{
		{From: "k1", To: "vc", Type: "belongs_to"},
		{From: "k2", To: "vc", Type: "belongs_to_value_chain"},
		{From: "k1", To: "e1", Type: "uses"},
		{From: "k2", To: "e1", Type: "uses_entity"},
	}

	flat := Build(collections, edges, Options{})
	k1 := flat.Roots[0].Children[0]
	if !k1.IsLeaf() {
		t.Errorf("k1 has children %v without attach", codes(k1.Children))
	}
	if !equal(k1.Uses, []string{"e1"}) {
		t.Errorf("k1.Uses = %v", k1.Uses)
	}

	nested := Build(collections, edges, Options{AttachEntitiesToMetrics: true})
	for _, k := range nested.Roots[0].Children {
		if got := codes(k.Children); !equal(got, []string{"e1"}) {
			t.Errorf("%s children = %v, want [e1]", k.Code(), got)
		}
	}

	for _, r := range []*Result{flat, nested} {
		bucket, ok := r.Bucket(BucketEntities)
		if !ok || !equal(codes(bucket.Children), []string{"e2"}) {
			t.Errorf("Unassigned Entities = %v, want [e2]", bucket)
		}
	}
}

func TestBuildBucketOrderAndSorting(t *testing.T) {
	r := Build(map[ontology.Kind][]ontology.Node{
		ontology.KindValueChain: {{Code: "z"}, {Code: "a"}},
		ontology.KindModule:     {{Code: "m1", Name: "Shipping"}, {Code: "m2", Name: "Billing"}},
		ontology.KindMetric:     {{Code: "k1", Name: "Yield"}, {Code: "k2", Name: "Accuracy"}},
		ontology.KindEntity:     {{Code: "e2"}, {Code: "e1"}},
	}, nil, Options{})

	want := []string{"z", "a", BucketModules, BucketMetrics, BucketEntities}
	if got := codes(r.Roots); !equal(got, want) {
		t.Fatalf("Roots = %v, want %v", got, want)
	}

	tests := []struct {
		bucket string
		want   []string
	}{
		{BucketModules, []string{"m2", "m1"}},
		{BucketMetrics, []string{"k2", "k1"}},
		{BucketEntities, []string{"e1", "e2"}},
	}
	for _, tt := range tests {
		b, _ := r.Bucket(tt.bucket)
		if !b.IsOrphanBucket {
			t.Errorf("%s: IsOrphanBucket = false", tt.bucket)
		}
		if got := codes(b.Children); !equal(got, tt.want) {
			t.Errorf("%s children = %v, want %v", tt.bucket, got, tt.want)
		}
	}
}

func TestBuildMetricPrefersModule(t *testing.T) {
	r := Build(map[ontology.Kind][]ontology.Node{
		ontology.KindValueChain: nodes("vc"),
		ontology.KindModule:     nodes("m"),
		ontology.KindMetric:     nodes("k"),
	}, []ontology.Edge{
		{From: "k", To: "vc", Type: "belongs_to"},
		{From: "m", To: "vc", Type: "belongs_to"},
		{From: "m", To: "k", Type: "contains"},
	}, Options{})

	vc := r.Roots[0]
	if got := codes(vc.Children); !equal(got, []string{"m"}) {
		t.Fatalf("vc children = %v, want only [m]", got)
	}
	if got := codes(vc.Children[0].Children); !equal(got, []string{"k"}) {
		t.Errorf("m children = %v, want [k]", got)
	}
}

func TestBuildUnresolvedParentIsOrphan(t *testing.T) {
	r := Build(map[ontology.Kind][]ontology.Node{
		ontology.KindMetric: nodes("k"),
	}, []ontology.Edge{
		{From: "k", To: "missing_vc", Type: "belongs_to"},
	}, Options{})

	b, ok := r.Bucket(BucketMetrics)
	if !ok || !equal(codes(b.Children), []string{"k"}) {
		t.Fatalf("metric with unknown parent should be orphaned, roots = %v", codes(r.Roots))
	}
	if b.DescendantMetricCount != 1 {
		t.Errorf("bucket DescendantMetricCount = %d, want 1", b.DescendantMetricCount)
	}
}

func TestBuildEmpty(t *testing.T) {
	r := Build(nil, nil, Options{})
	if !r.Empty() {
		t.Errorf("Empty() = false, roots = %v", codes(r.Roots))
	}
}

func TestBuildConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	types := []string{"belongs_to", "belongs_to_module", "contains", "uses", "belongs_to_value_chain", "noise"}

	for trial := 0; trial < 50; trial++ {
		collections := map[ontology.Kind][]ontology.Node{}
		var all []string
		counts := map[ontology.Kind]int{
			ontology.KindValueChain: rng.Intn(3),
			ontology.KindModule:     rng.Intn(5),
			ontology.KindMetric:     rng.Intn(8),
			ontology.KindEntity:     rng.Intn(4),
		}
		for kind, n := range counts {
			for i := 0; i < n; i++ {
				code := fmt.Sprintf("%s%d", kind, i)
				collections[kind] = append(collections[kind], ontology.Node{Code: code})
				all = append(all, code)
			}
		}
		var edges []ontology.Edge
		for i := 0; i < 15 && len(all) > 0; i++ {
			edges = append(edges, ontology.Edge{
				From: all[rng.Intn(len(all))],
				To:   all[rng.Intn(len(all))],
				Type: types[rng.Intn(len(types))],
			})
		}

		r := Build(collections, edges, Options{AttachEntitiesToMetrics: trial%2 == 0})

		seen := map[string]int{}
		r.Walk(func(n *Node, _ int) bool {
			if !n.IsOrphanBucket && n.Kind() != ontology.KindEntity {
				seen[n.Code()]++
			}
			return true
		})
		for kind, n := range counts {
			if kind == ontology.KindEntity {
				continue
			}
			for i := 0; i < n; i++ {
				code := fmt.Sprintf("%s%d", kind, i)
				if seen[code] != 1 {
					t.Fatalf("trial %d: %s appears %d times", trial, code, seen[code])
				}
			}
		}

		total := 0
		for _, root := range r.Roots {
			total += root.DescendantMetricCount
		}
		if total != counts[ontology.KindMetric] {
			t.Fatalf("trial %d: metric count = %d, want %d", trial, total, counts[ontology.KindMetric])
		}
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	r := Build(map[ontology.Kind][]ontology.Node{
		ontology.KindValueChain: nodes("vc"),
		ontology.KindModule:     nodes("m"),
	}, []ontology.Edge{{From: "m", To: "vc", Type: "belongs_to"}}, Options{})

	var visited []string
	r.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Code())
		return depth < 0
	})
	if !equal(visited, []string{"vc"}) {
		t.Errorf("visited = %v, want [vc]", visited)
	}
}
