// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

var studioCategories = []StudioCategory{
	{
		Key:         "aodai",
		Label:       "Ao Dai",
		Description: "Heritage-inspired sets for traditional silk dresses",
		Studios: []string{
			"Lacquered Red Heritage Studio | carved wooden screen, silk lantern out of focus, warm tungsten key",
			"Lotus Pond Studio | shallow reflecting pool, pink lotus props, soft diffused top light",
			"Indochine Tile Studio | encaustic cement floor, ochre wall, golden hour simulation",
			"Moon Gate Studio | circular plaster arch, bamboo silhouette, cool rim light",
			"Silk Drape Studio | ivory silk panels, single ceramic vase, window light simulation",
		},
	},
	{
		Key:         "professional",
		Label:       "Professional",
		Description: "Clean corporate looks for tailoring and office wear",
		Studios: []string{
			"Concrete Loft Studio | polished concrete, steel window frame, overcast daylight simulation",
			"Walnut Panel Studio | dark wood wall, leather chair prop, low key side light",
			"Glass Partition Studio | frosted glass, city bokeh backdrop, cool fluorescent tone",
			"Minimal Gallery Studio | white cyclorama, single plinth, even softbox light",
		},
	},
	{
		Key:         "casual",
		Label:       "Casual",
		Description: "Relaxed everyday sets for streetwear and basics",
		Studios: []string{
			"Pastel Block Studio | color-blocked paper backdrops, soft pastel gel light",
			"Sunlit Cafe Studio | marble counter, rattan stool, morning light simulation",
			"Graffiti Wall Studio | painted brick wall, skateboard prop, hard flash",
			"Terracotta Arch Studio | plaster arches, dried pampas, golden hour simulation",
		},
	},
	{
		Key:         "evening",
		Label:       "Evening",
		Description: "Dramatic sets for gowns and party wear",
		Studios: []string{
			"Velvet Curtain Studio | deep burgundy drape, brass floor lamp, spotlight from above",
			"Mirror Hall Studio | antique mirror panels, candle cluster, chiaroscuro light",
			"Champagne Stair Studio | curved staircase set, gold balustrade, warm rim light",
			"Black Marble Studio | glossy black floor, single orchid, cool backlight haze",
		},
	},
	{
		Key:         "sportswear",
		Label:       "Sportswear",
		Description: "Energetic sets for athleisure without gym equipment",
		Studios: []string{
			"Neon Track Studio | painted running lane, neon tube accents, hard side light",
			"Rooftop Court Studio | court lines on rubber floor, chain fence, sunset simulation",
			"Chalk White Studio | seamless white, chalk dust in air, strobe freeze light",
		},
	},
	{
		Key:         "sleepwear",
		Label:       "Sleepwear",
		Description: "Soft intimate sets for loungewear and robes",
		Studios: []string{
			"Linen Morning Studio | crumpled linen set, sheer curtain, sunrise simulation",
			"Cloud Pillow Studio | white pillow mound, soft haze, diffused top light",
			"Moonlit Window Studio | window frame set, blue night gel, single warm practical",
		},
	},
	{
		Key:         "accessories",
		Label:       "Accessories",
		Description: "Close-up friendly sets for bags, shoes and jewelry",
		Studios: []string{
			"Plinth Stack Studio | stacked travertine plinths, hard shadow, noon light simulation",
			"Satin Ripple Studio | rippled satin floor, pearl scatter, soft beauty dish",
			"Desert Sand Studio | sand dune set, dry branch prop, warm low sun simulation",
		},
	},
}
