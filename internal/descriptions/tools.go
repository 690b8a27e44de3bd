package descriptions

import "sort"

// Tool names
const (
	ToolExtractFile = "topics_extract_file"
	ToolExtractText = "topics_extract_text"
	ToolListFiles   = "topics_list_files"
	ToolList        = "topics_list"
	ToolGet         = "topics_get"
	ToolSearch      = "topics_search"
	ToolFilter      = "topics_filter"
	ToolFacets      = "topics_facets"
	ToolExport      = "topics_export"
	ToolServerInfo  = "topics_server_info"
)

const (
	ExtractFileDescription = `Extract every funding topic from a Horizon Europe work programme PDF.

**When to use:** You have a work programme PDF in the configured directory and want its topics as structured records.

**What you get:** A summary of the extraction (topic count, orphaned metadata, duplicate codes) and the loaded session ID. All other topics_* tools then work on this document.

**Examples:**
• "Extract the topics from wp-cluster-5-2024.pdf"
• "Load horizon/cl6-2025.pdf and tell me how many topics it has"

**Common workflows:**
1. Discovery: topics_list_files → topics_extract_file → topics_list
2. Shortlisting: topics_extract_file → topics_facets → topics_filter → topics_export

**Best practices:** Paths are relative to the configured directory. Zero topics is a normal result for documents without section codes.`

	ExtractTextDescription = `Extract funding topics from raw work programme text.

**When to use:** The text was already pulled out of a PDF, or it comes from another source such as a copied web page.

**What you get:** The same summary as topics_extract_file. The text replaces the loaded session.

**Best practices:** Keep the original line breaks. Section codes must start their line for a topic to be recognised.`

	ListFilesDescription = `List work programme PDFs available in the configured directory.

**When to use:** Before topics_extract_file, to find the right document.

**Examples:**
• "Which work programmes are available?"
• "Find the cluster 5 PDFs" (query: cluster-5)`

	ListDescription = `Show a compact table of the topics in the loaded document.

**When to use:** To get an overview after extraction. Each line shows code, title, type of action, deadline and budget per project.

**Best practices:** Use limit for large documents, then topics_get for the details of one topic.`

	GetDescription = `Show every field of one topic, including expected outcome, scope and full text.

**When to use:** You know a topic code and need its details.

**Examples:**
• "Show HORIZON-CL5-2024-D1-01-01"`

	SearchDescription = `Search all fields of all topics for a keyword, case-insensitively.

**When to use:** Free-text discovery, e.g. "hydrogen", "TRL 6" or a partner country.

**What you get:** Matching topics with the keyword highlighted in expected outcome and scope.`

	FilterDescription = `Narrow the loaded topics by type of action, call, TRL, destination, budget and dates.

**When to use:** Building a shortlist against concrete eligibility constraints.

**Parameters:** List parameters take comma-separated values, except destination, which is separated by semicolons because destination titles contain commas. Values must match facet values exactly (see topics_facets). Budgets are in euros; a topic without a per-project budget counts as 0. Dates are inclusive; topics with an unparseable date are dropped when a date range is set.

**Examples:**
• "Innovation Actions with deadline before 2025-01-31"
• "RIA topics with a budget between 3 and 6 million in the Climate destination"`

	FacetsDescription = `List the filter values available in the loaded document.

**When to use:** Before topics_filter, to see the exact types of action, calls, TRLs and destinations, and the largest per-project budget.`

	ExportDescription = `Export the loaded topics, optionally filtered, to a file in the export directory.

**Formats:** xlsx (sheet "Topics"), csv, json, yaml.

**Parameters:** Accepts every topics_filter parameter. filename is optional and defaults to horizon_topics.<format>.

**Best practices:** Dates are written as ISO dates when they can be parsed.`

	ServerInfoDescription = `Get server information, directories, available work programmes, the loaded session and usage guidance.

**When to use:** At the start of a conversation, to see what the server can do and what is already loaded.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	ToolExtractFile: ExtractFileDescription,
	ToolExtractText: ExtractTextDescription,
	ToolListFiles:   ListFilesDescription,
	ToolList:        ListDescription,
	ToolGet:         GetDescription,
	ToolSearch:      SearchDescription,
	ToolFilter:      FilterDescription,
	ToolFacets:      FacetsDescription,
	ToolExport:      ExportDescription,
	ToolServerInfo:  ServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the sorted names of all tools
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
