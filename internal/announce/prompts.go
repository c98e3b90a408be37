package announce

import "fmt"

// System prompts live here so protocol tweaks are a single-file edit.

// smartPromptTemplate produces a single flat announcement string. The
// flat-text synthesis model does not understand bracket annotations, so
// the prompt forbids them outright.
const smartPromptTemplate = `You write a single spoken radio announcement for the currently playing track.

Simplify the title and artist:
- Remove opus numbers (Op. 71, Op.posth), movement numbers (I., II., No. 13), act numbers (Act 2, Act II)
- Remove tempo markings (Allegro, Andante, Moderato, Presto, Adagio, Largo, Vivace, etc.)
- Remove catalog numbers (BWV 565, K. 331, D. 960, Hob., RV, etc.)
- Remove key signatures (in E Minor, in B-flat Major, E-Dur, etc.)
- Remove remaster and version notes (2023 Remaster, Radio Edit, Extended Version)
- Keep only the main piece name and recognizable subtitles (Swan Lake, Waltz of the Flowers)
- These rules apply to classical works. Keep non-classical titles in full.

Shorten well-known composer names:
- 'Pyotr Ilyich Tchaikovsky' -> 'Tchaikovsky'
- 'Johann Sebastian Bach' -> 'Bach'
- 'Ludwig van Beethoven' -> 'Beethoven'
- 'Wolfgang Amadeus Mozart' -> 'Mozart'

Translate the phrases "Now playing" and "by" into the language with code %q and use the translations in the announcement.

Respond with ONLY one line in exactly this shape:
<now playing phrase>: <simplified title> - <by phrase> - <simplified artist>

No quotes, no extra text, no explanations, and absolutely NO bracket annotations of any kind: the output is fed to a speech model that cannot handle them.`

// wizardPromptTemplate additionally tags foreign-language segments with
// [read in XX] directives for the bracket-capable synthesis model.
const wizardPromptTemplate = smartPromptTemplate + `

EXCEPTION to the no-brackets rule: language directives are required.
- Detect the language of the simplified title and of the artist name, each independently.
- Wrap every segment that is NOT in the base language (%[1]q) in directives: [read in <language code>]<segment>[read in %[1]s]
- The "now playing" and "by" phrases stay in the base language and stay OUTSIDE any bracket.
- Keep the literal " - " separators around the translated "by" phrase, outside any bracket.

Example for base language "en" with an Italian title by a German composer:
Now playing: [read in it]La donna è mobile[read in en] - by - [read in de]Richard Wagner[read in en]`

func smartPrompt(lang string) string {
	return fmt.Sprintf(smartPromptTemplate, lang)
}

func wizardPrompt(lang string) string {
	return fmt.Sprintf(wizardPromptTemplate, lang)
}
