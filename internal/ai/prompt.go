package ai

// BuildVendorBlockPrompt returns the text-mode extraction prompt for one
// block of vendor text.
func BuildVendorBlockPrompt(block string) string {
	return `You are a data extraction assistant for a maintenance management system. The text below describes a single vendor (a company that supplies parts or services). Extract the vendor's details.

Return ONLY a single JSON object with no markdown formatting, no code fences and no explanation, using exactly these keys:
{
  "name": "",
  "address": "",
  "phone": "",
  "email": "",
  "contact_person": "",
  "description": ""
}

Rules:
- "name" is the business name. If you cannot find one, use an empty string.
- Copy phone numbers and emails exactly as written.
- "description" is a short summary of what the vendor provides.
- Use an empty string for any field not present in the text.

Vendor text:
` + block
}

// BuildVendorVisionPrompt returns the vision-mode prompt used for images and
// rasterized document pages. The model may find many vendors on one page.
func BuildVendorVisionPrompt() string {
	return `You are a data extraction assistant for a maintenance management system. The image shows a vendor list, table, directory page, business card or similar document. Extract EVERY vendor (company supplying parts or services) you can see.

Return ONLY a JSON array with no markdown formatting, no code fences and no explanation. Each element must be an object with these keys:
{
  "name": "",
  "email": "",
  "phone": "",
  "contact_person": "",
  "contact_title": "",
  "vendor_type": "service | supplier | contractor | consultant",
  "address": "",
  "city": "",
  "state": "",
  "zip_code": "",
  "website": "",
  "description": "",
  "rating": null
}

Rules:
- One object per vendor, in the order they appear (top to bottom, left to right).
- Column headers, titles and totals are not vendors.
- Use an empty string for text fields you cannot read and null for rating unless a 1-5 rating is shown.
- If the image contains no vendors, return [].`
}

// BuildVerbatimTextPrompt asks a vision model to transcribe a page as plain text.
func BuildVerbatimTextPrompt() string {
	return `Transcribe all text on this page exactly as it appears. Preserve line breaks, and separate distinct entries or paragraphs with a blank line. Do not summarize, translate, correct or add commentary. Return only the transcribed text.`
}
