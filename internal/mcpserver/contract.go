package mcpserver

// CSVFormatContract describes the tabular store formats that imported files
// must follow. Exposed as an MCP resource so LLM consumers can produce
// valid replacement files.
const CSVFormatContract = `# Macrolog CSV Store Format

Both stores are plain CSV with a mandatory header row. Imports fully replace
the store and are atomic: one malformed row rejects the whole file.

## foods.csv

` + "```" + `csv
name,base_amount,unit,calories,protein_g,fat_g,sat_fat_g
Rolled oats (dry),100,g,379,13,7,1.2
` + "```" + `

- name: unique food name (natural key)
- base_amount: positive number; the serving size the nutrient columns refer to
- unit: one of g, ml, unit (display only, never converted)
- calories, protein_g, fat_g, sat_fat_g: non-negative numbers per base_amount

## log.csv

` + "```" + `csv
date,food,quantity,unit,base_amount,calories,protein_g,fat_g,sat_fat_g
2024-01-01,Rolled oats (dry),50,g,100,189.5,6.5,3.5,0.6
` + "```" + `

- date: calendar date, YYYY-MM-DD
- food, unit, base_amount: copied from the catalog at logging time
- quantity: non-negative number in the food's base unit
- nutrient columns: the snapshot computed at logging time; they are stored
  values, not recomputed from the current catalog
`
