// Package domain models typhoon bulletin pages and the records extracted from them.
//
// # Data Source
//
// Tropical cyclone bulletins are PDF documents issued several times a day while
// a cyclone is inside the area of responsibility. An upstream renderer turns each
// page into an image, an object detector marks the table rows and columns on it,
// and a text layer supplies positioned word tokens. Every page of one bulletin is
// published as a single [Document] message on the source topic.
//
// # Coordinates
//
// Tokens and detections share one pixel space with the origin at the top left,
// so Top < Bottom and X0 < X1 for a well-formed box. Malformed boxes are kept;
// they simply intersect nothing.
//
// # Bulletin Conventions
//
// Issue times are written in Philippine Standard Time (UTC+8), in one of:
//
//	"11:00 AM, 04 December 2025"
//	"11:00 AM 04 December 2025"
//	"23:00, 04 December 2025"
//	"December 04, 2025 11:00 AM"
//
// Wind signals run from level 1 (weakest) to level 5. Rainfall warnings run from
// level 1 (heaviest, red) to level 3 (yellow). Each level lists affected places
// per island group: Luzon, Visayas and Mindanao, with Other for vague phrases
// such as "rest of Luzon" that name no specific place.
//
// # Record Shape
//
// Records always carry every level key and every island group key, with null
// for "no data", so downstream consumers never have to test for presence. See
// [Record.Map] and [StripConfidence].
package domain
