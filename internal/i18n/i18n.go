// Package i18n registers the message catalogue used with l10n.T and l10n.F.
// English is the source language; importing the package adds Italian.
package i18n

import "github.com/ideamans/go-l10n"

var italian = l10n.LexiconMap{
	// notices
	"Captured %s":              "Catturato %s",
	"Saved %s":                 "Salvato %s",
	"Copied %s to clipboard":   "%s copiato negli appunti",
	"image":                    "immagine",
	"screen %d":                "schermo %d",
	"Unable to save image":     "Impossibile salvare l'immagine",
	"Unable to copy image":     "Impossibile copiare l'immagine",
	"Unable to render image":   "Impossibile comporre l'immagine",
	"Unable to capture screen": "Impossibile catturare lo schermo",

	// tray
	"Capture":                       "Cattura",
	"Capture the configured screen": "Cattura lo schermo configurato",
	"Quit":                          "Esci",
	"Quit markshot":                 "Esci da markshot",

	// cli
	"Wrote %s":                                   "Scritto %s",
	"Refusing to write image data to a terminal": "Rifiuto di scrivere dati immagine su un terminale",
	"Copied image to clipboard":                  "Immagine copiata negli appunti",
	"Press %s to capture, or use the tray menu":  "Premi %s per catturare, o usa il menu della barra",
	"No screens":                                 "Nessuno schermo",
	"Config written to %s":                       "Configurazione scritta in %s",
	"Save path set to %s":                        "Percorso di salvataggio impostato a %s",
	"Format set to %s":                           "Formato impostato a %s",
	"markshot version %s":                        "markshot versione %s",

	// editor window
	"Crop: drag to select, Enter to apply, Escape to cancel": "Ritaglio: trascina per selezionare, Invio per applicare, Esc per annullare",
	"Tool: %s  Colour: %s":                                   "Strumento: %s  Colore: %s",
}

func init() {
	l10n.Register("it", italian)
}

// Keys lists the source strings that carry a translation.
func Keys() []string {
	keys := make([]string, 0, len(italian))
	for k := range italian {
		keys = append(keys, k)
	}
	return keys
}
