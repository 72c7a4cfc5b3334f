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

var regions = []Region{
	{
		Key:         "vietnam_north",
		Label:       "Northern Vietnam",
		Description: "Hanoi heritage streets, limestone bays and terraced highlands",
		Locations: []string{
			"Hanoi Old Quarter, Hang Ma Street",
			"Temple of Literature (Van Mieu), Hanoi",
			"Long Bien Bridge at dawn, Hanoi",
			"Hoan Kiem Lake and The Huc Bridge, Hanoi",
			"Hanoi Train Street, Phung Hung",
			"Trang An limestone river, Ninh Binh",
			"Tam Coc rice fields, Ninh Binh",
			"Ha Long Bay cruise deck, Quang Ninh",
			"Mu Cang Chai terraced fields, Yen Bai",
			"Sapa stone church square, Lao Cai",
		},
	},
	{
		Key:         "vietnam_central",
		Label:       "Central Vietnam",
		Description: "Imperial citadels, lantern-lit towns and coastal passes",
		Locations: []string{
			"Hoi An Ancient Town, Quang Nam",
			"Japanese Covered Bridge, Hoi An",
			"Hue Imperial Citadel, Ngo Mon Gate",
			"Thien Mu Pagoda by the Perfume River, Hue",
			"Khai Dinh Royal Tomb, Hue",
			"Hai Van Pass coastal road, Da Nang",
			"Golden Bridge at Ba Na Hills, Da Nang",
			"My Son Sanctuary ruins, Quang Nam",
			"Ky Co Beach cliffs, Quy Nhon",
		},
	},
	{
		Key:         "vietnam_south",
		Label:       "Southern Vietnam",
		Description: "Saigon colonial landmarks, river delta life and island beaches",
		Locations: []string{
			"Saigon Central Post Office, Ho Chi Minh City",
			"Notre-Dame Cathedral Basilica, Saigon",
			"Saigon Opera House steps, District 1",
			"Nguyen Hue Walking Street at night, Saigon",
			"Tan Dinh Pink Church, Saigon",
			"Cai Rang Floating Market, Can Tho",
			"Da Lat Flower Gardens, Lam Dong",
			"Crazy House, Da Lat",
			"Sao Beach, Phu Quoc",
		},
	},
	{
		Key:         "east_asia",
		Label:       "East Asia",
		Description: "Temples, neon districts and historic lanes of Japan, Korea and China",
		Locations: []string{
			"Fushimi Inari Shrine torii path, Kyoto",
			"Gion district lanes, Kyoto",
			"Shibuya Crossing at night, Tokyo",
			"Arashiyama Bamboo Grove, Kyoto",
			"Gyeongbokgung Palace courtyard, Seoul",
			"Bukchon Hanok Village, Seoul",
			"The Bund waterfront, Shanghai",
			"Jiufen Old Street, New Taipei",
		},
	},
	{
		Key:         "europe",
		Label:       "Europe",
		Description: "Old-world boulevards, palaces and Mediterranean coastlines",
		Locations: []string{
			"Trocadero terrace facing the Eiffel Tower, Paris",
			"Palais Royal columns, Paris",
			"Galleria Vittorio Emanuele II, Milan",
			"Positano cliffside stairs, Amalfi Coast",
			"Oia whitewashed rooftops, Santorini",
			"Plaza de Espana, Seville",
			"Charles Bridge at sunrise, Prague",
			"Hallstatt lakeside village, Austria",
		},
	},
	{
		Key:         "modern_city",
		Label:       "Modern City",
		Description: "Contemporary skylines, glass architecture and rooftop views",
		Locations: []string{
			"Marina Bay Sands SkyPark, Singapore",
			"Gardens by the Bay Supertree Grove, Singapore",
			"Landmark 81 observation deck, Saigon",
			"Dubai Marina promenade, Dubai",
			"Lotte World Tower plaza, Seoul",
			"Petronas Twin Towers skybridge view, Kuala Lumpur",
		},
	},
}
