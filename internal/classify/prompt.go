package classify

// classificationPrompt asks the model to locate the Planned Machinery Survey
// section. Each page image carries a page number stamped in its top-right
// corner; continuation pages without the heading belong to the same section.
const classificationPrompt = `You are an intelligent assistant analyzing a maritime survey document. Each page image has a page number clearly marked in the top-right corner.

Your task is to identify ALL pages that are part of the 'Planned Machinery Survey' section, which is related to the Continuous Machinery Survey (CMS).

Look for the following indicators:
- The exact heading: 'NK-SHIPS: Survey Status - Planned Machinery Survey'
- Text that explicitly mentions 'System applied: CMS: Continuous Machinery Survey'
- Tables containing machinery survey data, often with survey codes (e.g., 311001, 313001).
- Pages that are clear continuations of the planned machinery survey tables from a previous page.

The planned machinery survey section can span multiple consecutive pages. Ensure you identify all pages belonging to this section.

Respond with a JSON object in the following format:
{
  "found": true/false,
  "page_numbers": [list of integer page numbers],
  "description": "A brief summary of your findings."
}

If no such pages are found, set "found" to false and provide an empty list for "page_numbers".`
