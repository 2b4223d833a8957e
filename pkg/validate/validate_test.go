package validate_test

import (
	"testing"

	"github.com/putrawardana/warungsaji/pkg/validate"
)

type productInput struct {
	Name        string `json:"name"        validate:"required,min=2,max=255"`
	Category    string `json:"category"    validate:"required,max=100"`
	Price       string `json:"price"       validate:"required,numeric"`
	ImageURL    string `json:"image_url"   validate:"nullable,url"`
	Description string `json:"description" validate:"nullable,max=2000"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Name:     "Nasi Goreng",
		Category: "Makanan",
		Price:    "15000",
		ImageURL: "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["price"]; !ok {
		t.Error("expected price to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "admin@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericRule(t *testing.T) {
	type in struct {
		Price string `json:"price" validate:"required,numeric"`
	}
	if errs := validate.Struct(in{Price: "abc"}); !validate.HasErrors(errs) {
		t.Error("expected non-numeric price to fail")
	}
	if errs := validate.Struct(in{Price: "15000.50"}); validate.HasErrors(errs) {
		t.Errorf("expected numeric price to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
	}
	if errs := validate.Struct(in{Quantity: 100}); !validate.HasErrors(errs) {
		t.Error("expected quantity > 99 to fail")
	}
	if errs := validate.Struct(in{Quantity: 2}); validate.HasErrors(errs) {
		t.Errorf("expected quantity 2 to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Op string `json:"op" validate:"required,in=set,increment,decrement"`
	}
	if errs := validate.Struct(in{Op: "multiply"}); !validate.HasErrors(errs) {
		t.Error("expected unknown op to fail")
	}
	if errs := validate.Struct(in{Op: "increment"}); validate.HasErrors(errs) {
		t.Errorf("expected increment to pass: %v", errs)
	}
}

func TestInFollowedByAnotherRule(t *testing.T) {
	type in struct {
		Category string `json:"category" validate:"required,in=Makanan,Minuman,Snack,max=100"`
	}
	if errs := validate.Struct(in{Category: "Minuman"}); validate.HasErrors(errs) {
		t.Errorf("expected listed category to pass: %v", errs)
	}
	if errs := validate.Struct(in{Category: "Elektronik"}); !validate.HasErrors(errs) {
		t.Error("expected unlisted category to fail")
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		ImageURL string `json:"image_url" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{ImageURL: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{ImageURL: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestUUIDRule(t *testing.T) {
	type in struct {
		ID string `json:"id" validate:"required,uuid"`
	}
	if errs := validate.Struct(in{ID: "3f1c8d52-9f6a-4a2e-b7cd-0a1e2f3a4b5c"}); validate.HasErrors(errs) {
		t.Errorf("expected valid uuid to pass: %v", errs)
	}
	if errs := validate.Struct(in{ID: "not-a-uuid"}); !validate.HasErrors(errs) {
		t.Error("expected invalid uuid to fail")
	}
}
