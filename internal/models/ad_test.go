package models

import (
	"testing"
)

func TestCategoryIsValid(t *testing.T) {
	valid := []Category{
		CategoryBooks, CategoryElectronics, CategoryClothes,
		CategoryFurniture, CategoryToys, CategoryOther,
	}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("category %q must be valid", c)
		}
	}

	for _, c := range []Category{"", "cars", "BOOKS"} {
		if c.IsValid() {
			t.Errorf("category %q must be invalid", c)
		}
	}
}

func TestConditionIsValid(t *testing.T) {
	if !ConditionNew.IsValid() || !ConditionUsed.IsValid() {
		t.Error("new and used must be valid conditions")
	}
	for _, c := range []Condition{"", "broken", "NEW"} {
		if c.IsValid() {
			t.Errorf("condition %q must be invalid", c)
		}
	}
}
