package schema

// DefaultSchema is written when no schema file exists yet. It wraps ls so the
// generated form is usable straight away and shows most argument types.
const DefaultSchema = `; cmdgui schema
;
; [program] holds the command that is run. Every other section declares one
; argument; the section name is the argument name and sections are emitted in
; the order they appear here. Comments take a whole line: a ; or # after a
; value is kept as part of the value.
;
; Keys per argument:
;   flag      flag as typed on the command line (-l, --width). Leave empty for a positional.
;   type      boolean | string | integer | file | dir | save | choice (default: string)
;   help      text shown next to the field
;   default   initial value
;   choices   comma separated values for choice arguments
;   group     mutex group id; at most one member of a group is used
;   multiple  file arguments only: accept several files
;   required  the value must not be empty

[program]
name        = Directory Lister
description = Lists directory contents with ls
command     = ls

[all]
flag = -a
type = boolean
help = Include entries starting with a dot

[long]
flag    = -l
type    = boolean
help    = Use a long listing format
default = true

[by_time]
flag  = -t
type  = boolean
help  = Sort by modification time, newest first
group = sorting

[by_size]
flag  = -S
type  = boolean
help  = Sort by file size, largest first
group = sorting

[width]
flag = --width
type = integer
help = Assume the screen is this many columns wide

[format]
flag    = --format
type    = choice
choices = across, commas, horizontal, long, single-column, verbose, vertical
help    = Listing format

[directory]
type    = dir
help    = Directory to list
default = .
`
