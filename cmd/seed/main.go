// seed genera un script SQL para poblar el catálogo de artículos a partir de
// un CSV exportado (sku;name;list_price). Acepta archivos en ISO-8859-1
// (exportes de Excel en español) o UTF-8.
//
// Uso: go run ./cmd/seed <company_id> [ruta/articulos.csv]
// Por defecto busca articulos.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_articles.sql
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type articleRow struct {
	sku   string
	name  string
	price decimal.Decimal
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed <company_id> [articulos.csv]")
		os.Exit(1)
	}
	companyID := os.Args[1]
	csvPath := "articulos.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	content := decodeLatin1IfNeeded(raw)

	var rows []articleRow
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ";")
		if len(parts) < 2 {
			fmt.Fprintf(os.Stderr, "línea %d ignorada: se esperan sku;name;list_price\n", lineNo)
			continue
		}
		sku := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[1])
		if sku == "" || name == "" || strings.EqualFold(sku, "sku") {
			continue
		}
		price := decimal.Zero
		if len(parts) > 2 {
			p, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(parts[2]), ",", "."))
			if err == nil {
				price = p
			}
		}
		rows = append(rows, articleRow{sku: sku, name: name, price: price})
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Leer líneas: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "el CSV no contiene artículos")
		os.Exit(1)
	}

	var sb strings.Builder
	sb.WriteString("-- Seed de artículos generado por cmd/seed. No editar a mano.\n")
	sb.WriteString("BEGIN;\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf(
			"INSERT INTO articles (id, company_id, sku, name, list_price, active, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', '%s', '%s', %s, true, now(), now())\n"+
				"ON CONFLICT (company_id, sku) DO NOTHING;\n",
			uuid.New().String(), sqlEscape(companyID), sqlEscape(r.sku), sqlEscape(r.name), r.price.String(),
		))
	}
	sb.WriteString("COMMIT;\n")

	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_articles.sql")
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s (%d artículos)\n", outPath, len(rows))
}

// decodeLatin1IfNeeded transcodifica desde ISO-8859-1 cuando el contenido no
// es UTF-8 válido (exportes de Excel en español suelen venir en latin-1).
func decodeLatin1IfNeeded(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
