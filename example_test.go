package xlbind_test

import (
	"bytes"
	"fmt"
	"log"
	"strconv"

	"github.com/javajack/xlbind"
)

type Product struct {
	SKU   string
	Name  string
	Price float64
}

func (p Product) FieldMap() map[string]string {
	return map[string]string{
		"sku":   p.SKU,
		"name":  p.Name,
		"price": strconv.FormatFloat(p.Price, 'f', -1, 64),
	}
}

func ExampleNormalize() {
	fmt.Println(xlbind.Normalize("First Name"))
	fmt.Println(xlbind.Normalize("first_name"))
	fmt.Println(xlbind.Normalize("Unit Price ($)"))
	// Output:
	// firstName
	// firstName
	// unitPrice
}

func ExampleExportBytes() {
	products := []Product{
		{SKU: "A-1", Name: "Widget", Price: 12.5},
		{SKU: "B-2", Name: "Gadget", Price: 7},
	}
	sets := []xlbind.Dataset{{
		Name:    "products",
		Headers: []string{"sku", "name", "price"},
		Records: xlbind.Exportables(products),
	}}
	labels := map[string]string{"products": "Products", "sku": "SKU", "name": "Name", "price": "Price"}

	data, err := xlbind.ExportBytes(sets, labels)
	if err != nil {
		log.Fatal(err)
	}

	back, err := xlbind.ImportReader[Product](bytes.NewReader(data), xlbind.WithSheet("Products"))
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range back {
		fmt.Printf("%s %s %.2f\n", p.SKU, p.Name, p.Price)
	}
	// Output:
	// A-1 Widget 12.50
	// B-2 Gadget 7.00
}
