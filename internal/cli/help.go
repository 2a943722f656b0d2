package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `searchcrit - compile search queries into SQL and run them

USAGE
  searchcrit [global flags] <command> [args]

GLOBAL FLAGS
  --env-file <path>          (default .env)
  --backend sqlite|postgres
  --sqlite-path <file.db>
  --sqlite-driver sqlite|sqlite3
  --pg-dsn <dsn>
  --pg-schema <name>
  --log-level debug|info|warn|error
  --log-format console|json

Every global flag has a SEARCHCRIT_* environment variable counterpart.

COMMANDS
  init                       create the catalog tables
  seed                       create the tables and load sample rows
  compile -e <entity> -q <query> [--dialect sqlite|postgres]
  search  -e <entity> -q <query> [--format pretty|ids|json] [--explain]
  count   -e <entity> -q <query>
  stats   -e <entity> -q <query> --field <name>

ENTITIES
  post   id score ratio safety tag tag-count comment-count creation-date uploader comment
  user   name rank creation-date

QUERY SYNTAX
  cat -dog score:5.. ratio:16:9 creation-date:2020..2021 tag:a,b
  Escape * \ : - . , with a backslash to match them literally.`)
}
