package schema

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		focus string
		want  Relationship
		ok    bool
	}{
		{
			name: "AssociationWithCardinalityAndLabel",
			line: `Account "1" -- "0..*" Lead : generates >`,
			want: Relationship{From: "Account", To: "Lead", Kind: Association, CardinalityLabel: "1 to 0..*", TextLabel: "generates", Direction: Bidirectional},
			ok:   true,
		},
		{
			name: "Composition",
			line: `Order "1" *-- "1..*" OrderLine : contains`,
			want: Relationship{From: "Order", To: "OrderLine", Kind: Composition, CardinalityLabel: "1 to 1..*", TextLabel: "contains", Direction: Bidirectional},
			ok:   true,
		},
		{
			name: "AggregationWithoutCardinality",
			line: `Team o-- Player`,
			want: Relationship{From: "Team", To: "Player", Kind: Aggregation, Direction: Bidirectional},
			ok:   true,
		},
		{
			name: "AggregationNameStartingWithO",
			line: `owner "1" o-- "*" order_item`,
			want: Relationship{From: "owner", To: "order_item", Kind: Aggregation, CardinalityLabel: "1 to *", Direction: Bidirectional},
			ok:   true,
		},
		{
			name:  "GeneralizationFocusIsSubtype",
			line:  `Customer --|> Party`,
			focus: "Customer",
			want:  Relationship{From: "Customer", To: "Party", Kind: Generalization, TextLabel: "inherits from", Direction: Forward},
			ok:    true,
		},
		{
			name:  "GeneralizationFocusIsSupertype",
			line:  `Customer --|> Party`,
			focus: "Party",
			want:  Relationship{From: "Customer", To: "Party", Kind: Generalization, TextLabel: "inherits from", Direction: Backward},
			ok:    true,
		},
		{
			name: "Dependency",
			line: `Invoice ..> Currency : priced in <`,
			want: Relationship{From: "Invoice", To: "Currency", Kind: Dependency, TextLabel: "priced in", Direction: Forward},
			ok:   true,
		},
		{
			name: "OneSidedCardinalityOmitsLabel",
			line: `Account "1" -- Lead`,
			want: Relationship{From: "Account", To: "Lead", Kind: Association, Direction: Bidirectional},
			ok:   true,
		},
		{
			name: "NoSpaces",
			line: `A--B`,
			want: Relationship{From: "A", To: "B", Kind: Association, Direction: Bidirectional},
			ok:   true,
		},
		{name: "Blank", line: "   "},
		{name: "Comment", line: `%% Account -- Lead`},
		{name: "Header", line: "classDiagram"},
		{name: "DependencyRejectsCardinality", line: `A "1" ..> "2" B`},
		{name: "GeneralizationRejectsLabel", line: `A --|> B : is a`},
		{name: "TrailingJunk", line: `A -- B C`},
		{name: "UnterminatedCard", line: `A "1 -- B`},
		{name: "UnknownConnector", line: `A <|-- B`},
		{name: "MissingTarget", line: `A --`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line, tt.focus)
			if ok != tt.ok {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseConnectorPrecedence(t *testing.T) {
	// Each longer connector contains "--"; the specific grammar must win.
	tests := []struct {
		line string
		want Kind
	}{
		{`A *-- B`, Composition},
		{`A o-- B`, Aggregation},
		{`A --|> B`, Generalization},
		{`A ..> B`, Dependency},
		{`A -- B`, Association},
	}
	for _, tt := range tests {
		s := Parse(tt.line, "")
		if len(s.Relationships) != 1 {
			t.Fatalf("Parse(%q) = %d relationships, want 1", tt.line, len(s.Relationships))
		}
		if got := s.Relationships[0].Kind; got != tt.want {
			t.Errorf("Parse(%q).Kind = %s, want %s", tt.line, got, tt.want)
		}
	}
}

func TestParseEntitiesFirstSeen(t *testing.T) {
	text := `
%% sales model
classDiagram
Account "1" -- "0..*" Lead : generates >
Lead ..> Campaign
this line is not a relationship
Contact --|> Account
Account o-- Contact
`
	s := Parse(text, "Account")
	if len(s.Relationships) != 4 {
		t.Fatalf("Relationships = %d, want 4", len(s.Relationships))
	}
	want := []string{"Account", "Lead", "Campaign", "Contact"}
	if got := s.EntityNames(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("EntityNames() = %v, want %v", got, want)
	}
}

func TestParseNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"\x00\x01\x02",
		`"""`,
		"-- -- --",
		": label only",
		strings.Repeat("A -- ", 100),
	}
	for _, in := range inputs {
		s := Parse(in, "")
		if s == nil {
			t.Fatalf("Parse(%q) returned nil", in)
		}
		if !s.Empty() || len(s.Entities) != 0 {
			t.Errorf("Parse(%q) = %+v, want empty", in, s)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	formats := []struct {
		kind Kind
		line string
	}{
		{Composition, `%s "1" *-- "*" %s : has`},
		{Aggregation, `%s o-- %s`},
		{Generalization, `%s --|> %s`},
		{Dependency, `%s ..> %s : needs`},
		{Association, `%s "0..1" -- "1" %s`},
	}
	names := [][2]string{{"A", "B"}, {"order_line", "Order2"}, {"x", "y_"}, {"oA", "o"}}

	for _, f := range formats {
		for _, n := range names {
			line := fmt.Sprintf(f.line, n[0], n[1])
			s := Parse(line, "")
			if len(s.Relationships) != 1 {
				t.Errorf("Parse(%q) = %d relationships, want 1", line, len(s.Relationships))
				continue
			}
			r := s.Relationships[0]
			if r.From != n[0] || r.To != n[1] || r.Kind != f.kind {
				t.Errorf("Parse(%q) = %+v", line, r)
			}
		}
	}
}

func TestParseReader(t *testing.T) {
	s, err := ParseReader(strings.NewReader("A -- B\nB ..> C\n"), "")
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if len(s.Relationships) != 2 {
		t.Errorf("Relationships = %d, want 2", len(s.Relationships))
	}
}

func TestParseLongLines(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	inputs := map[string]string{
		"comment":   "A -- B\n%% " + long + "\nC -- D\n",
		"unmatched": "A -- B\n" + long + "\nC -- D",
		"entity":    "A -- B\nC -- " + long + "\n",
	}

	for name, text := range inputs {
		t.Run(name, func(t *testing.T) {
			parsed := Parse(text, "")
			read, err := ParseReader(strings.NewReader(text), "")
			if err != nil {
				t.Fatalf("ParseReader: %v", err)
			}
			for _, s := range []*Schema{parsed, read} {
				if len(s.Relationships) != 2 {
					t.Errorf("Relationships = %d, want 2", len(s.Relationships))
				}
				if last := s.Relationships[len(s.Relationships)-1]; last.From != "C" {
					t.Errorf("last relationship = %+v, want the line after the long one", last)
				}
			}
		})
	}
}
