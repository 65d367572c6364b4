// Package config loads, validates, edits and persists portctl button layouts.
//
// A layout is a JSON document:
//
//	{
//	  "settings": {"serial_device": "/dev/ttyUSB0", "serial_baudrate": 115200},
//	  "unit_types": {
//	    "router": {
//	      "description": "Bench router, rev B",
//	      "button_groups": [
//	        {
//	          "title": "Console",
//	          "group_type": "serial",
//	          "buttons": [
//	            {"text": "Open", "action": "open_screen"},
//	            {"text": "Reboot", "action": "send_to_serial", "command": "reboot",
//	             "style": {"bg": "#aa0000", "fg": "white"}}
//	          ]
//	        }
//	      ]
//	    }
//	  }
//	}
//
// serial_device and serial_baudrate are required. Documents from the first
// release, which only had a top-level button_groups list, load as a single
// unit type named "default" and are written back in the unit_types form.
//
// Load checks the document against an embedded JSON Schema before decoding,
// then Validate checks the rules the schema cannot express: required
// settings, known actions, unique group titles and non-empty payloads.
//
// Store wraps a loaded Config for the interactive UI. Its edit methods
// apply an in-memory change, persist the whole file atomically and notify
// subscribers. Watch reports edits made to the file by other programs.
package config
