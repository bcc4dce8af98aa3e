package variantgen

import (
	"testing"

	"github.com/razorforge-lang/rfc/ast"
	"github.com/razorforge-lang/rfc/span"
)

func sp() span.Span {
	return span.Point("t.rf", 1, 1, 0)
}

func TestGenerateSkipsNeverFails(t *testing.T) {
	prog := &ast.Program{
		File: "t.rf",
		Decls: []ast.Decl{
			&ast.FunctionDecl{Name: "add", Failure: ast.NeverFails, Span: sp()},
		},
	}
	got := Generate(prog)
	if len(got) != 0 {
		t.Fatalf("expected no generated decls, got %d", len(got))
	}
	if len(prog.Decls) != 1 {
		t.Fatalf("expected Decls untouched, got %d entries", len(prog.Decls))
	}
}

func TestGenerateThreeVariants(t *testing.T) {
	prog := &ast.Program{
		File: "t.rf",
		Decls: []ast.Decl{
			&ast.FunctionDecl{
				Name:       "parse_int",
				Params:     []ast.Param{{Name: "s", Span: sp()}},
				ReturnType: &ast.NamedType{Name: "Result", Span: sp()},
				Failure:    ast.ReturnsResultSum,
				Span:       sp(),
			},
		},
	}
	got := Generate(prog)
	if len(got) != 3 {
		t.Fatalf("expected 3 generated decls, got %d", len(got))
	}

	names := map[string]ast.VariantKind{}
	for _, d := range got {
		names[d.Name] = d.VariantKind
	}
	wantKinds := map[string]ast.VariantKind{
		"try_parse_int":   ast.TryVariant,
		"check_parse_int": ast.CheckVariant,
		"find_parse_int":  ast.FindVariant,
	}
	for name, kind := range wantKinds {
		got, ok := names[name]
		if !ok {
			t.Errorf("missing synthesized declaration %q", name)
			continue
		}
		if got != kind {
			t.Errorf("%s: VariantKind = %v, want %v", name, got, kind)
		}
	}

	if len(prog.Decls) != 4 {
		t.Fatalf("expected original + 3 siblings appended, got %d decls", len(prog.Decls))
	}
	for _, d := range got {
		fn := d
		if !fn.Generated {
			t.Errorf("%s: Generated = false, want true", fn.Name)
		}
		if fn.GeneratedOf != "parse_int" {
			t.Errorf("%s: GeneratedOf = %q, want parse_int", fn.Name, fn.GeneratedOf)
		}
		if len(fn.Params) != 1 || fn.Params[0].Name != "s" {
			t.Errorf("%s: params not copied from original", fn.Name)
		}
	}
}

func TestGenerateDoesNotRecurseOnGenerated(t *testing.T) {
	prog := &ast.Program{
		File: "t.rf",
		Decls: []ast.Decl{
			&ast.FunctionDecl{Name: "f", Failure: ast.ThrowsFailure, Span: sp()},
		},
	}
	Generate(prog)
	// A second run over the now-mutated Decls must not synthesize
	// try_try_f / try_check_f / etc: generated siblings never themselves
	// carry a Failure marker that triggers synthesis.
	more := Generate(prog)
	if len(more) != 0 {
		t.Fatalf("expected no further generation on an already-expanded program, got %d", len(more))
	}
}
