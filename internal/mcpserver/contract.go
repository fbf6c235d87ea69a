package mcpserver

// ChecklistFormatContract describes the canonical markdown checklist format
// that LLM consumers should follow when creating or editing checklist files.
const ChecklistFormatContract = `# Laguz Checklist Format Contract

Every checklist stored in Laguz is one markdown file with this structure.

## Structure

` + "```" + `markdown
# Human-readable title
<!-- type:task -->

- [ ] open item
- [x] completed item
- [ ] task item | status:in_progress | estimated:90
- [x] tracked item | status:completed | time:[{"id":"e1","startTime":"2025-01-20T09:00:00Z","endTime":"2025-01-20T09:45:00Z"}]
` + "```" + `

## Rules

1. **The first ` + "`# `" + ` heading is the title.** The filename stem is derived
   from it (lowercase, hyphens); renaming the title renames the file.
2. **The ` + "`<!-- type:task -->`" + ` marker** declares a task checklist. Files
   without the marker are treated as task checklists anyway when any item
   carries task metadata; otherwise they are simple checklists.
3. **Items** are ` + "`- [ ]`" + ` / ` + "`- [x]`" + ` lines. Everything after the checkbox up
   to the first ` + "` | `" + ` separator is the item text.
4. **Task metadata** is appended as ` + "` | key:value`" + ` fields:
   - ` + "`status`" + `: todo, in_progress or completed
   - ` + "`time`" + `: JSON array of time entries ({id, startTime, endTime})
   - ` + "`estimated`" + `: estimated minutes (integer)
   - ` + "`target`" + `: target date, ISO format (YYYY-MM-DD)
5. **Literal pipes** in item text must be written as ` + "`∣`" + ` (U+2223); the
   ASCII ` + "`|`" + ` is reserved for the metadata separator.
6. **Simple checklists** carry no metadata fields: just checkbox and text.
7. **Encoding** is UTF-8 with a trailing newline.

## Assets & Images

- Upload assets via the ` + "`upload_asset`" + ` tool. It returns a ` + "`markdownImage`" + `
  field ready to paste into a note body.
- Assets land in the owner's ` + "`notes/{user}/images/`" + ` staging directory and
  are served from ` + "`/api/uploads/images/{filename}`" + `.
- Supported formats: png, jpg, jpeg, gif, webp, svg, pdf.

## Example

` + "```" + `markdown
# Sprint 12
<!-- type:task -->

- [x] write release notes | status:completed | time:[{"id":"sprint-12-1","startTime":"2025-01-20T09:00:00Z","endTime":"2025-01-20T09:30:00Z"}]
- [ ] review open PRs | status:in_progress | estimated:120
- [ ] deploy to staging | status:todo | target:2025-01-24
` + "```" + `
`
